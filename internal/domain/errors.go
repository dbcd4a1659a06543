package domain

import (
	"errors"
	"fmt"
)

// Code identifies a class of failure. Codes are stable strings surfaced to callers.
type Code string

const (
	CodeInvalidConfiguration   Code = "InvalidConfiguration"
	CodeUnknownComponentSystem Code = "UnknownComponentSystem"
	CodeUnknownTransformer     Code = "UnknownTransformer"

	CodeNoInputData          Code = "NoInputData"
	CodeInvalidInputFormat   Code = "InvalidInputFormat"
	CodeRootNotObjectOrArray Code = "RootNotObjectOrArray"

	CodeInvalidJSONFromLLM       Code = "InvalidJsonFromLLM"
	CodeInvalidComponentMetadata Code = "InvalidComponentMetadata"
	CodeTransportError           Code = "TransportError"

	CodeRenderStrategyMissing Code = "RenderStrategyMissing"
	CodeCannotRenderVideo     Code = "cannot-render-video"
)

// Error carries a taxonomy code alongside the underlying cause.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error sentinel with the same code and no cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidConfiguration     = &Error{Code: CodeInvalidConfiguration}
	ErrUnknownComponentSystem   = &Error{Code: CodeUnknownComponentSystem}
	ErrUnknownTransformer       = &Error{Code: CodeUnknownTransformer}
	ErrNoInputData              = &Error{Code: CodeNoInputData}
	ErrInvalidInputFormat       = &Error{Code: CodeInvalidInputFormat}
	ErrRootNotObjectOrArray     = &Error{Code: CodeRootNotObjectOrArray}
	ErrInvalidJSONFromLLM       = &Error{Code: CodeInvalidJSONFromLLM}
	ErrInvalidComponentMetadata = &Error{Code: CodeInvalidComponentMetadata}
	ErrTransport                = &Error{Code: CodeTransportError}
	ErrRenderStrategyMissing    = &Error{Code: CodeRenderStrategyMissing}
	ErrCannotRenderVideo        = &Error{Code: CodeCannotRenderVideo}
)

// Errorf builds a coded error. The format supports %w.
func Errorf(code Code, format string, args ...any) error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

// CodeOf returns the taxonomy code carried anywhere in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Validation error codes that are not field-indexed.
const (
	CodeChartNoData             = "chart.noData"
	CodeChartInvalidSeriesCount = "chart.invalidSeriesCount"
	CodeChartInvalidComponent   = "chart.invalidComponent"
)

// ValidationError is a non-fatal problem found while checking component data.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return v.Code + ": " + v.Message
}

// FieldPathCode builds the hierarchical code for a data_path problem on field i,
// e.g. FieldPathCode(2, "invalid") is "fields[2].data_path.invalid".
func FieldPathCode(i int, problem string) string {
	return fmt.Sprintf("fields[%d].data_path.%s", i, problem)
}

// Field path problems.
const (
	PathInvalidFormat   = "invalid_format"
	PathInvalid         = "invalid"
	PathNotEnoughValues = "not_enough_values"
)
