package cliargs

import "fmt"

const (
	// boundary errors
	errInvalidUnicode = `command line arguments contain invalid unicode (index: %d, argument: %q)`

	// option usage errors
	errInvalidChar  = `option contains invalid character (option: %q)`
	errUnconfigured = `option is not specified in configurations (option: %q)`
	errNeedsArg     = `option needs argument(s) (option: %q, store key: %q)`
	errTakesNoArg   = `option takes no argument (option: %q, store key: %q)`
	errIsNotArray   = `option cannot take multiple arguments (option: %q, store key: %q)`
	errArgIsInvalid = `option argument is invalid (option: %q, store key: %q, argument: %q, details: %s)`

	// configuration errors
	errDupStoreKey      = `store key is duplicated (store key: %q, name: %q)`
	errArrayButNoArg    = `array configuration takes no argument (store key: %q, name: %q)`
	errDefaultsButNoArg = `configuration has defaults but takes no argument (store key: %q, name: %q)`
	errDupName          = `option name is duplicated (store key: %q, name: %q)`
)

// OsArgsContainInvalidUnicode is returned by CmdFrom when an element of
// the argument vector is not valid UTF-8. Index counts the program path
// as 0.
type OsArgsContainInvalidUnicode struct {
	Index  int
	RawArg string
}

func (e OsArgsContainInvalidUnicode) Error() string {
	return fmt.Sprintf(errInvalidUnicode, e.Index, e.RawArg)
}

// OptionContainsInvalidChar is returned when an option name in the
// parsed arguments breaks the name character rules. Option holds the
// whole text after the hyphen(s) for a long option, or the single
// offending character for a short option.
type OptionContainsInvalidChar struct {
	Option string
}

func (e OptionContainsInvalidChar) Error() string {
	return fmt.Sprintf(errInvalidChar, e.Option)
}

// UnconfiguredOption is returned when an option in the parsed arguments
// matches no configuration and no wildcard configuration exists.
type UnconfiguredOption struct {
	Option string
}

func (e UnconfiguredOption) Error() string {
	return fmt.Sprintf(errUnconfigured, e.Option)
}

// OptionNeedsArg is returned when an option configured with HasArg got
// no argument.
type OptionNeedsArg struct {
	Option   string
	StoreKey string
}

func (e OptionNeedsArg) Error() string {
	return fmt.Sprintf(errNeedsArg, e.Option, e.StoreKey)
}

// OptionTakesNoArg is returned when an option configured without HasArg
// got an argument.
type OptionTakesNoArg struct {
	Option   string
	StoreKey string
}

func (e OptionTakesNoArg) Error() string {
	return fmt.Sprintf(errTakesNoArg, e.Option, e.StoreKey)
}

// OptionIsNotArray is returned when an option configured without
// IsArray got arguments twice or more.
type OptionIsNotArray struct {
	Option   string
	StoreKey string
}

func (e OptionIsNotArray) Error() string {
	return fmt.Sprintf(errIsNotArray, e.Option, e.StoreKey)
}

// OptionArgIsInvalid is returned when an option argument is rejected by
// the validator, or cannot be converted to the bound field type.
type OptionArgIsInvalid struct {
	StoreKey string
	Option   string
	OptArg   string
	Details  string
}

func (e OptionArgIsInvalid) Error() string {
	return fmt.Sprintf(errArgIsInvalid, e.Option, e.StoreKey, e.OptArg, e.Details)
}

// StoreKeyIsDuplicated is returned when two configurations share a
// store key.
type StoreKeyIsDuplicated struct {
	StoreKey string
	Name     string
}

func (e StoreKeyIsDuplicated) Error() string {
	return fmt.Sprintf(errDupStoreKey, e.StoreKey, e.Name)
}

// ConfigIsArrayButHasNoArg is returned when a configuration sets
// IsArray without HasArg.
type ConfigIsArrayButHasNoArg struct {
	StoreKey string
	Name     string
}

func (e ConfigIsArrayButHasNoArg) Error() string {
	return fmt.Sprintf(errArrayButNoArg, e.StoreKey, e.Name)
}

// ConfigHasDefaultsButHasNoArg is returned when a configuration sets
// non-empty Defaults without HasArg.
type ConfigHasDefaultsButHasNoArg struct {
	StoreKey string
	Name     string
}

func (e ConfigHasDefaultsButHasNoArg) Error() string {
	return fmt.Sprintf(errDefaultsButNoArg, e.StoreKey, e.Name)
}

// OptionNameIsDuplicated is returned when two configurations share an
// option name.
type OptionNameIsDuplicated struct {
	StoreKey string
	Name     string
}

func (e OptionNameIsDuplicated) Error() string {
	return fmt.Sprintf(errDupName, e.StoreKey, e.Name)
}

// OptionOf returns the option name an error complains about. For
// configuration errors that is the first non-empty name of the
// offending configuration. The unicode error answers an empty string.
func OptionOf(err error) string {
	switch e := err.(type) {
	case OptionContainsInvalidChar:
		return e.Option
	case UnconfiguredOption:
		return e.Option
	case OptionNeedsArg:
		return e.Option
	case OptionTakesNoArg:
		return e.Option
	case OptionIsNotArray:
		return e.Option
	case OptionArgIsInvalid:
		return e.Option
	case StoreKeyIsDuplicated:
		return e.Name
	case ConfigIsArrayButHasNoArg:
		return e.Name
	case ConfigHasDefaultsButHasNoArg:
		return e.Name
	case OptionNameIsDuplicated:
		return e.Name
	}
	return ""
}
