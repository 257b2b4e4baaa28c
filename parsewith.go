package cliargs

// ParseWith parses the arguments with option configurations. Only
// configured options are accepted, unless a wildcard configuration
// (store key "*") is present. An option with HasArg takes its argument
// either inline (--opt=val) or from the next raw argument.
//
// Collected arguments are stored under the effective store key of the
// matched configuration. Defaults of configurations absent from the
// arguments are filled in after the walk. Like Parse, the first error
// is returned only after the whole argument vector was walked.
func (c *Cmd) ParseWith(cfgs []OptCfg) error {
	_, err := c.parseWith(cfgs, false)
	return err
}

// ParseUntilSubCmdWith parses with option configurations until the
// first command argument and returns the subcommand Cmd starting
// there. The subcommand is nil when no command argument was found. The
// subcommand keeps the end-of-options state reached in the parent, so
// parsing it continues where the parent stopped.
func (c *Cmd) ParseUntilSubCmdWith(cfgs []OptCfg) (*Cmd, error) {
	return c.parseWith(cfgs, true)
}

func (c *Cmd) parseWith(cfgs []OptCfg, untilFirstArg bool) (*Cmd, error) {
	c.Cfgs = cfgs

	// index the configurations, verifying their consistency
	cfgMap := make(map[string]int)
	storeKeys := make(map[string]bool)
	hasAnyOpt := false

	for i, cfg := range cfgs {
		storeKey := cfg.storeKey()
		if storeKey == "" {
			continue
		}
		if storeKey == anyOption {
			hasAnyOpt = true
			continue
		}

		firstName := cfg.primaryName()

		if storeKeys[storeKey] {
			return nil, StoreKeyIsDuplicated{StoreKey: storeKey, Name: firstName}
		}
		storeKeys[storeKey] = true

		if !cfg.HasArg {
			if cfg.IsArray {
				return nil, ConfigIsArrayButHasNoArg{StoreKey: storeKey, Name: firstName}
			}
			if len(cfg.Defaults) > 0 {
				return nil, ConfigHasDefaultsButHasNoArg{StoreKey: storeKey, Name: firstName}
			}
		}

		hasName := false
		for _, name := range cfg.Names {
			if name == "" {
				continue
			}
			if _, ok := cfgMap[name]; ok {
				return nil, OptionNameIsDuplicated{StoreKey: storeKey, Name: name}
			}
			cfgMap[name] = i
			hasName = true
		}
		if !hasName {
			// a configuration without names is matched by its store key
			if _, ok := cfgMap[storeKey]; ok {
				return nil, OptionNameIsDuplicated{StoreKey: storeKey, Name: storeKey}
			}
			cfgMap[storeKey] = i
		}
	}

	takeOptArgs := func(name string) bool {
		if i, ok := cfgMap[name]; ok {
			return cfgs[i].HasArg
		}
		return false
	}

	collectArg := func(arg string) {
		c.args = append(c.args, arg)
	}

	collectOpt := func(name string, optArg *string) error {
		i, ok := cfgMap[name]
		if !ok {
			if !hasAnyOpt {
				return UnconfiguredOption{Option: name}
			}
			// wildcard accepted options are stored under their own
			// name and bypass arity checks and validation
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

		cfg := cfgs[i]
		storeKey := cfg.storeKey()

		if optArg != nil {
			if !cfg.HasArg {
				return OptionTakesNoArg{Option: name, StoreKey: storeKey}
			}
			if len(c.opts[storeKey]) > 0 && !cfg.IsArray {
				return OptionIsNotArray{Option: name, StoreKey: storeKey}
			}
			if cfg.Validator != nil {
				if err := cfg.Validator(storeKey, name, *optArg); err != nil {
					return err
				}
			}
			optArgs := c.opts[storeKey]
			if optArgs == nil {
				optArgs = make([]string, 0, 1)
			}
			c.opts[storeKey] = append(optArgs, *optArg)
			return nil
		}

		if cfg.HasArg {
			return OptionNeedsArg{Option: name, StoreKey: storeKey}
		}
		if _, ok := c.opts[storeKey]; !ok {
			c.opts[storeKey] = make([]string, 0)
		}
		return nil
	}

	stopIndex, afterEndOpts, err := parseArgs(
		c.rawArgs, collectArg, collectOpt, takeOptArgs, untilFirstArg, c.isAfterEndOpts)
	c.isAfterEndOpts = afterEndOpts
	if err != nil {
		return nil, err
	}

	// fill defaults of options that did not appear; they are trusted
	// and not validated again
	for _, cfg := range cfgs {
		storeKey := cfg.storeKey()
		if storeKey == "" || storeKey == anyOption {
			continue
		}
		if _, ok := c.opts[storeKey]; ok {
			continue
		}
		if cfg.Defaults == nil {
			continue
		}
		optArgs := make([]string, 0, len(cfg.Defaults))
		c.opts[storeKey] = append(optArgs, cfg.Defaults...)
	}

	if stopIndex < 0 {
		return nil, nil
	}
	return c.subCmdAt(stopIndex, afterEndOpts), nil
}
