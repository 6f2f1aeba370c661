package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrEmptyTable     = errors.New("table has no rows")
	ErrColumnMissing  = errors.New("required column missing")
	ErrNoValidValues  = errors.New("column has no valid values")
	ErrWrongType      = errors.New("column has unexpected type")
	ErrUnsupportedExt = errors.New("unsupported input file type")
)

// NewColumnMissingError names the missing column
func NewColumnMissingError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnMissing, column)
}

// NewNoValidValuesError names the column that could not be imputed
func NewNoValidValuesError(column string) error {
	return fmt.Errorf("%w: %s", ErrNoValidValues, column)
}

// NewWrongTypeError names the column and the type it was expected to have
func NewWrongTypeError(column, expected string) error {
	return fmt.Errorf("%w: %s is not %s", ErrWrongType, column, expected)
}

// IsSchemaError reports whether err stems from the input schema
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrColumnMissing) || errors.Is(err, ErrWrongType)
}
