package app

import (
	"context"
	stderrors "errors"

	"telcochurn/domain/core"
	"telcochurn/internal/errors"
)

// Process exit codes for the pipeline entrypoints
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfig      = 2
	ExitInput       = 3
	ExitOutput      = 4
	ExitInterrupted = 130
)

// ExitCode maps a pipeline error to a process exit code. Input problems,
// schema problems included, share ExitInput.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case core.IsSchemaError(err):
		return ExitInput
	case !errors.IsAppError(err):
		return ExitFailure
	}

	switch errors.GetCode(err) {
	case errors.CodeConfigInvalid:
		return ExitConfig
	case errors.CodeInputUnreadable, errors.CodeSchemaMismatch, errors.CodeInvalidInput, errors.CodeEmptyTable:
		return ExitInput
	case errors.CodeOutputWriteFailed, errors.CodeRenderFailed:
		return ExitOutput
	default:
		return ExitFailure
	}
}
