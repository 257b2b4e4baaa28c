package cliargs

import (
	"errors"
	"reflect"
	"strconv"
)

// Number covers the numeric types ValidateNumber can check.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ValidateNumber returns a Validator checking that an option argument
// parses as T. A floating point argument beyond T's range is accepted
// because it reads as an infinity.
func ValidateNumber[T Number]() Validator {
	var zero T
	ty := reflect.TypeOf(zero)
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

// checkNumber reports whether s parses as the numeric type ty. On
// failure the short reason text is returned.
func checkNumber(ty reflect.Type, s string) (string, bool) {
	var err error
	switch ty.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		_, err = strconv.ParseInt(s, 10, ty.Bits())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		_, err = strconv.ParseUint(s, 10, ty.Bits())
	case reflect.Float32, reflect.Float64:
		_, err = strconv.ParseFloat(s, ty.Bits())
		if errors.Is(err, strconv.ErrRange) {
			err = nil
		}
	}
	if err != nil {
		return numErrDetails(err), false
	}
	return "", true
}

// numErrDetails strips strconv's "ParseXxx: parsing ..." wrapping and
// keeps the reason only, e.g. "invalid syntax", "value out of range".
func numErrDetails(err error) string {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return numErr.Err.Error()
	}
	return err.Error()
}
