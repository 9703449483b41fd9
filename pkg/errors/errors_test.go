package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestE(t *testing.T) {
	tests := []struct {
		name     string
		args     []interface{}
		wantKind Kind
		wantOp   string
		wantMsg  string
	}{
		{
			name:     "kind op and message",
			args:     []interface{}{KindParse, "parser.Parse", "input is not a JSON object"},
			wantKind: KindParse,
			wantOp:   "parser.Parse",
			wantMsg:  "input is not a JSON object",
		},
		{
			name:     "kind only",
			args:     []interface{}{KindValidation},
			wantKind: KindValidation,
		},
		{
			name:     "wrapped error",
			args:     []interface{}{KindGeneration, "generator.CreateReport", "validation failed", fmt.Errorf("boom")},
			wantKind: KindGeneration,
			wantOp:   "generator.CreateReport",
			wantMsg:  "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := E(tt.args...)
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("E() returned %T, want *Error", err)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if e.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", e.Message, tt.wantMsg)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "op message and wrapped",
			err:  &Error{Op: "parser.Parse", Message: "bad input", Err: fmt.Errorf("eof")},
			want: "parser.Parse: bad input: eof",
		},
		{
			name: "op and message",
			err:  &Error{Op: "parser.Parse", Message: "bad input"},
			want: "parser.Parse: bad input",
		},
		{
			name: "message only",
			err:  &Error{Message: "bad input"},
			want: "bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesKind(t *testing.T) {
	inner := E(KindValidation, "validate", "report failed validation")
	wrapped := Wrap(inner, "parser.Parse")

	if GetKind(wrapped) != KindValidation {
		t.Errorf("GetKind(wrapped) = %v, want KindValidation", GetKind(wrapped))
	}
	if !errors.Is(wrapped, inner.(*Error)) {
		t.Error("wrapped error should match inner by kind")
	}
	if Wrap(nil, "op") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestKindCheckers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"parse error", E(KindParse, "op", "m"), IsParseError, true},
		{"validation error", E(KindValidation, "op", "m"), IsValidationError, true},
		{"schema error", ErrTaxonomyNotLoaded, IsSchemaError, true},
		{"generation error", E(KindGeneration, "op", "m"), IsGenerationError, true},
		{"plain error is not parse", fmt.Errorf("plain"), IsParseError, false},
		{"validation is not parse", E(KindValidation, "op", "m"), IsParseError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("checker = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	if GetKind(ErrEmptyInput) != KindParse {
		t.Error("ErrEmptyInput should be a parse error")
	}
	if GetKind(ErrUnsupportedInput) != KindInvalidInput {
		t.Error("ErrUnsupportedInput should be an invalid-input error")
	}
}
