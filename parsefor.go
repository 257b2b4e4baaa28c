package cliargs

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// option store build time errors
	errParseDefault = `error parsing default value "%s" of field "%s", error: %w`
	errNotStruct    = `option store must be a struct, but got %s`
	errBadFieldType = `cannot use field "%s" of type %s to store option arguments`
	errBoolDefault  = `bool field "%s" must not have default values`
)

// OptParser is implemented by custom field types which convert an
// option argument themselves. The binding walk checks it before the
// field kind, so any field whose pointer type implements it takes one
// option argument and parses it with FromString.
type OptParser interface {
	FromString(s string) error
}

var optParserType = reflect.TypeOf((*OptParser)(nil)).Elem()

// ParseFor derives option configurations from the fields of *optStore,
// parses the arguments with them, and copies the collected option
// arguments back onto the fields. The field values stay at their
// defaults when parsing fails.
func ParseFor[T any](cmd *Cmd, optStore *T) error {
	cfgs, err := MakeOptCfgsFor(optStore)
	if err != nil {
		return err
	}
	if err := cmd.ParseWith(cfgs); err != nil {
		return err
	}
	return ApplyOpts(cmd, optStore)
}

// ParseUntilSubCmdFor works like ParseFor but stops at the first
// command argument and returns the subcommand Cmd starting there, nil
// when no command argument was found.
func ParseUntilSubCmdFor[T any](cmd *Cmd, optStore *T) (*Cmd, error) {
	cfgs, err := MakeOptCfgsFor(optStore)
	if err != nil {
		return nil, err
	}
	subCmd, err := cmd.ParseUntilSubCmdWith(cfgs)
	if err != nil {
		return nil, err
	}
	if err := ApplyOpts(cmd, optStore); err != nil {
		return nil, err
	}
	return subCmd, nil
}

// MakeOptCfgsFor builds one option configuration per exported field of
// the struct pointed to by optStore, and resets every such field to
// its default value.
//
// The field name is the store key. The field tags are:
//
//	cfg:"names"               comma separated option names
//	cfg:"names=default"       with one default value
//	cfg:"names=[d1,d2]"       with default values, comma separated
//	cfg:"names=:[d1:d2]"      with default values, separated by the
//	                          character before the open bracket
//	desc:"..."                option description for help
//	arg:"<value>"             argument display name for help
//
// A field type decides how the option is parsed: bool fields make flag
// options (and must not have defaults), string and numeric fields take
// one argument, slices take repeated arguments, pointers mark optional
// arguments and stay nil when the option is absent. A field whose
// pointer type implements OptParser takes one argument and converts it
// itself. Unexported fields are ignored.
func MakeOptCfgsFor[T any](optStore *T) ([]OptCfg, error) {
	storeValue := reflect.ValueOf(optStore).Elem()
	storeType := storeValue.Type()
	if storeType.Kind() != reflect.Struct {
		return nil, fmt.Errorf(errNotStruct, storeType)
	}

	cfgs := make([]OptCfg, 0, storeType.NumField())
	for i := 0; i < storeType.NumField(); i++ {
		field := storeType.Field(i)
		if !field.IsExported() {
			continue
		}
		cfg, err := newFieldCfg(field, storeValue.Field(i))
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// ApplyOpts copies the option arguments collected in cmd onto the
// exported fields of the struct pointed to by optStore, converting
// them to the field types. The first conversion failure is returned as
// OptionArgIsInvalid and stops the copy.
func ApplyOpts[T any](cmd *Cmd, optStore *T) error {
	storeValue := reflect.ValueOf(optStore).Elem()
	storeType := storeValue.Type()
	if storeType.Kind() != reflect.Struct {
		return fmt.Errorf(errNotStruct, storeType)
	}

	for i := 0; i < storeType.NumField(); i++ {
		field := storeType.Field(i)
		if !field.IsExported() {
			continue
		}
		if err := applyFieldOpts(field, storeValue.Field(i), cmd); err != nil {
			return err
		}
	}
	return nil
}

func newFieldCfg(field reflect.StructField, fieldValue reflect.Value) (OptCfg, error) {
	cfg := OptCfg{
		StoreKey:  field.Name,
		Desc:      field.Tag.Get("desc"),
		ArgInHelp: field.Tag.Get("arg"),
	}
	if tag, ok := field.Tag.Lookup("cfg"); ok {
		namesSpec, defaultsSpec, hasDefaults := strings.Cut(tag, "=")
		cfg.Names = splitOptNames(namesSpec)
		if hasDefaults {
			cfg.Defaults = parseDefaultsSpec(defaultsSpec)
		}
	}

	fieldType := field.Type

	if reflect.PointerTo(fieldType).Implements(optParserType) {
		// The default value is not parsed here. It flows through the
		// collected options like a given argument, so FromString runs
		// exactly once per parse even for stateful parsers.
		cfg.HasArg = true
		fieldValue.Set(reflect.Zero(fieldType))
		return cfg, nil
	}

	switch fieldType.Kind() {
	case reflect.Bool:
		if cfg.Defaults != nil {
			return OptCfg{}, fmt.Errorf(errBoolDefault, field.Name)
		}
		fieldValue.SetBool(false)

	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		cfg.HasArg = true
		cfg.Validator = numberValidator(fieldType)
		fieldValue.Set(reflect.Zero(fieldType))
		if len(cfg.Defaults) > 0 {
			if err := setValueFromString(fieldValue, cfg.Defaults[0]); err != nil {
				return OptCfg{}, fmt.Errorf(errParseDefault, cfg.Defaults[0], field.Name, err)
			}
		}

	case reflect.Slice:
		if !isOptScalarKind(fieldType.Elem().Kind()) {
			return OptCfg{}, fmt.Errorf(errBadFieldType, field.Name, fieldType)
		}
		cfg.HasArg = true
		cfg.IsArray = true
		cfg.Validator = numberValidator(fieldType.Elem())
		slice := reflect.MakeSlice(fieldType, len(cfg.Defaults), len(cfg.Defaults))
		for i, defaultValue := range cfg.Defaults {
			if err := setValueFromString(slice.Index(i), defaultValue); err != nil {
				return OptCfg{}, fmt.Errorf(errParseDefault, defaultValue, field.Name, err)
			}
		}
		fieldValue.Set(slice)

	case reflect.Pointer:
		if !isOptScalarKind(fieldType.Elem().Kind()) {
			return OptCfg{}, fmt.Errorf(errBadFieldType, field.Name, fieldType)
		}
		cfg.HasArg = true
		cfg.Validator = numberValidator(fieldType.Elem())
		fieldValue.Set(reflect.Zero(fieldType))
		if len(cfg.Defaults) > 0 {
			elem := reflect.New(fieldType.Elem())
			if err := setValueFromString(elem.Elem(), cfg.Defaults[0]); err != nil {
				return OptCfg{}, fmt.Errorf(errParseDefault, cfg.Defaults[0], field.Name, err)
			}
			fieldValue.Set(elem)
		}

	default:
		return OptCfg{}, fmt.Errorf(errBadFieldType, field.Name, fieldType)
	}

	return cfg, nil
}

func applyFieldOpts(field reflect.StructField, fieldValue reflect.Value, cmd *Cmd) error {
	storeKey := field.Name
	optArgs := cmd.OptArgs(storeKey)

	argErr := func(optArg string, details string) error {
		return OptionArgIsInvalid{
			StoreKey: storeKey,
			Option:   fieldOptionName(field),
			OptArg:   optArg,
			Details:  details,
		}
	}

	if fieldValue.Addr().Type().Implements(optParserType) {
		if len(optArgs) > 0 {
			parser := fieldValue.Addr().Interface().(OptParser)
			if err := parser.FromString(optArgs[0]); err != nil {
				return argErr(optArgs[0], err.Error())
			}
		}
		return nil
	}

	switch fieldValue.Kind() {
	case reflect.Bool:
		fieldValue.SetBool(cmd.HasOpt(storeKey))

	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if len(optArgs) > 0 {
			if err := setValueFromString(fieldValue, optArgs[0]); err != nil {
				return argErr(optArgs[0], numErrDetails(err))
			}
		}

	case reflect.Slice:
		// a present option replaces the whole slice, even with an
		// empty one
		if optArgs == nil {
			return nil
		}
		slice := reflect.MakeSlice(fieldValue.Type(), len(optArgs), len(optArgs))
		for i, optArg := range optArgs {
			if err := setValueFromString(slice.Index(i), optArg); err != nil {
				return argErr(optArg, numErrDetails(err))
			}
		}
		fieldValue.Set(slice)

	case reflect.Pointer:
		if len(optArgs) > 0 {
			elem := reflect.New(fieldValue.Type().Elem())
			if err := setValueFromString(elem.Elem(), optArgs[0]); err != nil {
				return argErr(optArgs[0], numErrDetails(err))
			}
			fieldValue.Set(elem)
		}

	default:
		return fmt.Errorf(errBadFieldType, field.Name, field.Type)
	}

	return nil
}

// fieldOptionName is the option name used in conversion errors: the
// first non-empty configured name, else the field name.
func fieldOptionName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("cfg"); ok {
		namesSpec, _, _ := strings.Cut(tag, "=")
		for _, name := range strings.Split(namesSpec, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				return trimmed
			}
		}
	}
	return field.Name
}

// splitOptNames splits the names part of a cfg tag. The names are
// trimmed; empty names between commas are kept for help alignment.
func splitOptNames(namesSpec string) []string {
	if namesSpec == "" {
		return nil
	}
	names := strings.Split(namesSpec, ",")
	for i, name := range names {
		names[i] = strings.TrimSpace(name)
	}
	return names
}

// parseDefaultsSpec reads the defaults part of a cfg tag: a bare text
// is one default value, "[a,b]" is a comma separated list, "s[asb]" is
// a list separated by the character s, and "[]" is an empty list.
// Anything else ending in "]" stays one literal value.
func parseDefaultsSpec(defaultsSpec string) []string {
	if !strings.HasSuffix(defaultsSpec, "]") {
		return []string{defaultsSpec}
	}

	if strings.HasPrefix(defaultsSpec, "[") {
		inner := defaultsSpec[1 : len(defaultsSpec)-1]
		if inner == "" {
			return make([]string, 0)
		}
		return strings.Split(inner, ",")
	}

	rest := defaultsSpec[:len(defaultsSpec)-1]
	sep, sepLen := utf8.DecodeRuneInString(rest)
	if sepLen > 0 && sepLen < len(rest) && rest[sepLen] == '[' {
		inner := rest[sepLen+1:]
		if inner == "" {
			return make([]string, 0)
		}
		return strings.Split(inner, string(sep))
	}
	return []string{defaultsSpec}
}

func isOptScalarKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func numberValidator(ty reflect.Type) Validator {
	switch ty.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return nil
	}
	return func(storeKey, option, optArg string) error {
		if details, ok := checkNumber(ty, optArg); !ok {
			return OptionArgIsInvalid{
				StoreKey: storeKey,
				Option:   option,
				OptArg:   optArg,
				Details:  details,
			}
		}
		return nil
	}
}

// setValueFromString fills one scalar value from an option argument.
// A floating point argument beyond the type range reads as infinity.
func setValueFromString(fieldValue reflect.Value, s string) error {
	switch fieldValue.Kind() {
	case reflect.String:
		fieldValue.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, fieldValue.Type().Bits())
		if err != nil {
			return err
		}
		fieldValue.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, fieldValue.Type().Bits())
		if err != nil {
			return err
		}
		fieldValue.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, fieldValue.Type().Bits())
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return err
		}
		fieldValue.SetFloat(n)
	}
	return nil
}
