package cliargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type loggingLevel int8

var validateCases = []struct {
	about     string
	validator Validator
	optArg    string
	wantErr   error
}{{
	about:     "int accepts a number",
	validator: ValidateNumber[int](),
	optArg:    "-123",
}, {
	about:     "int rejects text",
	validator: ValidateNumber[int](),
	optArg:    "abc",
	wantErr: OptionArgIsInvalid{
		StoreKey: "key", Option: "opt", OptArg: "abc", Details: "invalid syntax",
	},
}, {
	about:     "int8 accepts its maximum",
	validator: ValidateNumber[int8](),
	optArg:    "127",
}, {
	about:     "int8 rejects beyond its width",
	validator: ValidateNumber[int8](),
	optArg:    "128",
	wantErr: OptionArgIsInvalid{
		StoreKey: "key", Option: "opt", OptArg: "128", Details: "value out of range",
	},
}, {
	about:     "uint rejects a negative number",
	validator: ValidateNumber[uint](),
	optArg:    "-1",
	wantErr: OptionArgIsInvalid{
		StoreKey: "key", Option: "opt", OptArg: "-1", Details: "invalid syntax",
	},
}, {
	about:     "float32 accepts a fraction",
	validator: ValidateNumber[float32](),
	optArg:    "0.25",
}, {
	about:     "a float beyond the range reads as infinity",
	validator: ValidateNumber[float32](),
	optArg:    "1e39",
}, {
	about:     "float rejects text",
	validator: ValidateNumber[float64](),
	optArg:    "x.y",
	wantErr: OptionArgIsInvalid{
		StoreKey: "key", Option: "opt", OptArg: "x.y", Details: "invalid syntax",
	},
}, {
	about:     "named numeric types work",
	validator: ValidateNumber[loggingLevel](),
	optArg:    "3",
}, {
	about:     "named numeric types keep their width",
	validator: ValidateNumber[loggingLevel](),
	optArg:    "1000",
	wantErr: OptionArgIsInvalid{
		StoreKey: "key", Option: "opt", OptArg: "1000", Details: "value out of range",
	},
}}

func TestValidateNumber(t *testing.T) {
	for _, c := range validateCases {
		t.Run(c.about, func(t *testing.T) {
			err := c.validator("key", "opt", c.optArg)
			if c.wantErr != nil {
				assert.Equal(t, c.wantErr, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
