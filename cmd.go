// Package cliargs parses command line arguments.
package cliargs

import (
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Cmd is one command invocation: the program name, the command
// arguments and the option arguments collected by one of the Parse
// methods.
//
// A Cmd must not be shared between goroutines while a Parse method
// runs. After parsing it is read only.
type Cmd struct {
	// Name is the base name of the program path, or the raw first
	// argument for a subcommand Cmd.
	Name string

	// Cfgs keeps the configurations a schema driven parse ran with,
	// for help rendering and inspection.
	Cfgs []OptCfg

	rawArgs        []string
	args           []string
	opts           map[string][]string
	isAfterEndOpts bool
}

// NewCmd makes a Cmd over os.Args.
func NewCmd() Cmd {
	return newCmd(os.Args)
}

// CmdFrom makes a Cmd over an explicit argument vector, osArgs[0]
// being the program path. It fails with OsArgsContainInvalidUnicode
// when an element is not valid UTF-8.
func CmdFrom(osArgs []string) (Cmd, error) {
	for i, osArg := range osArgs {
		if !utf8.ValidString(osArg) {
			return Cmd{}, OsArgsContainInvalidUnicode{Index: i, RawArg: osArg}
		}
	}
	return newCmd(osArgs), nil
}

func newCmd(osArgs []string) Cmd {
	cmd := Cmd{opts: make(map[string][]string)}
	if len(osArgs) > 0 {
		if osArgs[0] != "" {
			cmd.Name = filepath.Base(osArgs[0])
		}
		cmd.rawArgs = osArgs[1:]
	}
	return cmd
}

// subCmdAt makes the child Cmd starting at rawArgs[index]. The child
// name is the raw argument itself, not a base name, and the child
// keeps the end-of-options state reached in the parent.
func (c *Cmd) subCmdAt(index int, afterEndOpts bool) *Cmd {
	return &Cmd{
		Name:           c.rawArgs[index],
		rawArgs:        c.rawArgs[index+1:],
		opts:           make(map[string][]string),
		isAfterEndOpts: afterEndOpts,
	}
}

// Args returns the command arguments in input order.
func (c *Cmd) Args() []string {
	return c.args
}

// HasOpt reports whether the option was given in the arguments or
// filled from defaults.
func (c *Cmd) HasOpt(storeKey string) bool {
	_, ok := c.opts[storeKey]
	return ok
}

// OptArg returns the first argument of the option. ok is false when
// the option was not given or was given without arguments.
func (c *Cmd) OptArg(storeKey string) (optArg string, ok bool) {
	if optArgs := c.opts[storeKey]; len(optArgs) > 0 {
		return optArgs[0], true
	}
	return "", false
}

// OptArgs returns all arguments of the option in input order. It
// returns nil when the option was not given, and a non-nil empty slice
// when it was given without arguments.
func (c *Cmd) OptArgs(storeKey string) []string {
	return c.opts[storeKey]
}
