package cliargs

import "strings"

// collectArgFn receives one command argument.
type collectArgFn func(arg string)

// collectOptFn receives one matched option. optArg is nil when the
// option got no argument.
type collectOptFn func(name string, optArg *string) error

// takeOptArgsFn reports whether the named option consumes the next
// argument.
type takeOptArgsFn func(name string) bool

// parseArgs walks args, dispatching options to collectOpt and command
// arguments to collectArg. The first recognition or collect error is
// remembered and the walk continues, so every recognizable option is
// still delivered; the remembered error is returned after the walk.
//
// With untilFirstArg the walk stops at the first command argument and
// returns its index together with the end-of-options state reached
// there; stopIndex is -1 when the walk ran through. A remembered error
// is then reported at the stop points instead.
func parseArgs(
	args []string,
	collectArg collectArgFn,
	collectOpt collectOptFn,
	takeOptArgs takeOptArgsFn,
	untilFirstArg bool,
	afterEndOpts bool,
) (stopIndex int, stoppedAfterEndOpts bool, err error) {
	var firstErr error
	recordErr := func(e error) {
		if firstErr == nil {
			firstErr = e
		}
	}

	prevOptTakingArgs := ""

	for iArg, arg := range args {
		if afterEndOpts {
			if untilFirstArg {
				if firstErr != nil {
					return -1, afterEndOpts, firstErr
				}
				return iArg, afterEndOpts, nil
			}
			collectArg(arg)
			continue
		}

		if prevOptTakingArgs != "" {
			// the pending option takes this argument verbatim,
			// even if it looks like an option
			optArg := arg
			e := collectOpt(prevOptTakingArgs, &optArg)
			prevOptTakingArgs = ""
			if e != nil {
				recordErr(e)
			}
			continue
		}

		if strings.HasPrefix(arg, "--") {
			if len(arg) == 2 {
				afterEndOpts = true
				continue
			}

			body := arg[2:]
			done := false
			for i, ch := range body {
				if i > 0 {
					if ch == '=' {
						optArg := body[i+1:]
						if e := collectOpt(body[:i], &optArg); e != nil {
							recordErr(e)
						}
						done = true
						break
					}
					if !isAllowedChar(ch) {
						recordErr(OptionContainsInvalidChar{Option: body})
						done = true
						break
					}
				} else if !isAllowedFirstChar(ch) {
					recordErr(OptionContainsInvalidChar{Option: body})
					done = true
					break
				}
			}
			if !done {
				if takeOptArgs(body) && iArg < len(args)-1 {
					prevOptTakingArgs = body
				} else if e := collectOpt(body, nil); e != nil {
					recordErr(e)
				}
			}
			continue
		}

		if strings.HasPrefix(arg, "-") {
			if len(arg) == 1 {
				if untilFirstArg {
					if firstErr != nil {
						return -1, afterEndOpts, firstErr
					}
					return iArg, afterEndOpts, nil
				}
				collectArg(arg)
				continue
			}

			body := arg[1:]
			name := ""
			done := false
			for i, ch := range body {
				if i > 0 && ch == '=' {
					// the rest binds to the last scanned name;
					// with no valid name before it, it is dropped
					if name != "" {
						optArg := body[i+1:]
						if e := collectOpt(name, &optArg); e != nil {
							recordErr(e)
						}
					}
					done = true
					break
				}
				if i > 0 && name != "" {
					if e := collectOpt(name, nil); e != nil {
						recordErr(e)
					}
				}
				if !isAllowedFirstChar(ch) {
					recordErr(OptionContainsInvalidChar{Option: string(ch)})
					name = ""
				} else {
					name = string(ch)
				}
			}
			if !done && name != "" {
				if takeOptArgs(name) && iArg < len(args)-1 {
					prevOptTakingArgs = name
				} else if e := collectOpt(name, nil); e != nil {
					recordErr(e)
				}
			}
			continue
		}

		if untilFirstArg {
			if firstErr != nil {
				return -1, afterEndOpts, firstErr
			}
			return iArg, afterEndOpts, nil
		}
		collectArg(arg)
	}

	return -1, afterEndOpts, firstErr
}

func isAllowedChar(ch rune) bool {
	return ch == '-' || isAllowedFirstChar(ch) || (ch >= '0' && ch <= '9')
}

func isAllowedFirstChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// Parse parses the arguments without configurations. Options are
// stored under their own names and accept arguments only inline
// (--opt=val, -o=val); an option followed by a separate argument never
// consumes it.
func (c *Cmd) Parse() error {
	collectArg := func(arg string) {
		c.args = append(c.args, arg)
	}
	collectOpt := func(name string, optArg *string) error {
		optArgs := c.opts[name]
		if optArgs == nil {
			optArgs = make([]string, 0)
		}
		if optArg != nil {
			optArgs = append(optArgs, *optArg)
		}
		c.opts[name] = optArgs
		return nil
	}
	takeOptArgs := func(name string) bool {
		return false
	}

	_, afterEndOpts, err := parseArgs(
		c.rawArgs, collectArg, collectOpt, takeOptArgs, false, c.isAfterEndOpts)
	c.isAfterEndOpts = afterEndOpts
	return err
}

// ParseUntilSubCmd parses without configurations until the first
// command argument and returns the subcommand Cmd starting there. The
// subcommand is nil when no command argument was found.
func (c *Cmd) ParseUntilSubCmd() (*Cmd, error) {
	collectArg := func(arg string) {
		c.args = append(c.args, arg)
	}
	collectOpt := func(name string, optArg *string) error {
		optArgs := c.opts[name]
		if optArgs == nil {
			optArgs = make([]string, 0)
		}
		if optArg != nil {
			optArgs = append(optArgs, *optArg)
		}
		c.opts[name] = optArgs
		return nil
	}
	takeOptArgs := func(name string) bool {
		return false
	}

	stopIndex, afterEndOpts, err := parseArgs(
		c.rawArgs, collectArg, collectOpt, takeOptArgs, true, c.isAfterEndOpts)
	c.isAfterEndOpts = afterEndOpts
	if err != nil {
		return nil, err
	}
	if stopIndex < 0 {
		return nil, nil
	}
	return c.subCmdAt(stopIndex, afterEndOpts), nil
}
