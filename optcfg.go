package cliargs

// anyOption is the wildcard store key which accepts any option not
// matched by other configurations.
const anyOption = "*"

// Validator checks one collected option argument before it is stored.
// It receives the store key, the option name matched on the command
// line, and the argument text.
type Validator func(storeKey, option, optArg string) error

// OptCfg configures how one command line option is parsed.
//
// StoreKey names the key the collected arguments are stored under; when
// empty it falls back to the first non-empty name. The literal "*"
// makes the configuration a wildcard which accepts any otherwise
// unconfigured option. Names lists the recognized option names: a name
// of two or more characters is matched as --name, a single character as
// -n. Empty names are skipped for matching but kept for help indent
// alignment.
type OptCfg struct {
	StoreKey  string
	Names     []string
	HasArg    bool
	IsArray   bool
	Defaults  []string
	Desc      string
	ArgInHelp string
	Validator Validator
}

// storeKey returns the effective store key: StoreKey when set, else the
// first non-empty name.
func (c OptCfg) storeKey() string {
	if c.StoreKey != "" {
		return c.StoreKey
	}
	for _, name := range c.Names {
		if name != "" {
			return name
		}
	}
	return ""
}

// primaryName returns the first non-empty name, else the store key. It
// names the configuration in error values.
func (c OptCfg) primaryName() string {
	for _, name := range c.Names {
		if name != "" {
			return name
		}
	}
	return c.StoreKey
}
