// Package errors provides custom error types for the XARF SDK.
// It follows industry best practices (HashiCorp, AWS SDK) for error handling.
package errors

import (
	"errors"
	"fmt"
)

// =============================================================================
// Base Error Types
// =============================================================================

// Error is the base error type for all SDK errors.
type Error struct {
	// Kind indicates the category of error
	Kind Kind

	// Op is the operation being performed (e.g., "parser.Parse")
	Op string

	// Message is a human-readable description
	Message string

	// Err is the underlying error
	Err error
}

// Kind represents the kind/category of error.
type Kind uint8

const (
	KindUnknown Kind = iota

	// KindParse indicates input that cannot be decoded into a structured
	// form at all, or legacy input missing conversion-critical fields.
	KindParse

	// KindValidation indicates structural, business-rule, or evidence
	// violations in otherwise decodable input.
	KindValidation

	// KindSchema indicates the taxonomy or schema definitions themselves
	// are unavailable or malformed. This is an operational error, not a
	// bad-input error.
	KindSchema

	// KindGeneration indicates caller-constructed data failed the shared
	// validators during report generation.
	KindGeneration

	KindInvalidInput
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindSchema:
		return "schema"
	case KindGeneration:
		return "generation"
	case KindInvalidInput:
		return "invalid_input"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		if e.Message != "" {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// =============================================================================
// Constructors
// =============================================================================

// E constructs an Error from the given arguments.
// Arguments can be: Kind, string (Op or Message), error.
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Kind:
			e.Kind = a
		case string:
			if e.Op == "" {
				e.Op = a
			} else {
				e.Message = a
			}
		case error:
			e.Err = a
		}
	}
	return e
}

// New creates a new simple error.
func New(message string) error {
	return &Error{Message: message}
}

// Wrap wraps an error with an operation, preserving the kind of the
// wrapped error if it is an SDK error.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: GetKind(err), Op: op, Err: err}
}

// =============================================================================
// Error Checkers
// =============================================================================

// GetKind returns the Kind of the error, or KindUnknown.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsParseError checks if the error is a parse error.
func IsParseError(err error) bool {
	return GetKind(err) == KindParse
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	return GetKind(err) == KindValidation
}

// IsSchemaError checks if the error is a schema/taxonomy error.
func IsSchemaError(err error) bool {
	return GetKind(err) == KindSchema
}

// IsGenerationError checks if the error is a generation error.
func IsGenerationError(err error) bool {
	return GetKind(err) == KindGeneration
}

// =============================================================================
// Common Errors
// =============================================================================

var (
	// ErrEmptyInput is returned when the parser receives no data.
	ErrEmptyInput = &Error{Kind: KindParse, Message: "empty input"}

	// ErrUnsupportedInput is returned for input forms the parser does not accept.
	ErrUnsupportedInput = &Error{Kind: KindInvalidInput, Message: "unsupported input type"}

	// ErrTaxonomyNotLoaded is returned when taxonomy definitions are unavailable.
	ErrTaxonomyNotLoaded = &Error{Kind: KindSchema, Message: "taxonomy definitions not loaded"}
)
