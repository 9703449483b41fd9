// Package validate implements the three validation layers applied to XARF
// reports: structural schema validation, category-specific business rules,
// and evidence content checks.
//
// All validators accumulate every violation instead of stopping at the
// first one, so a caller sees the complete list in a single pass. Each
// error carries the dotted field path it applies to and a stable,
// machine-readable reason code.
package validate

import (
	"fmt"
	"strings"
)

// Stable reason codes carried by validation errors and warnings.
const (
	CodeSchemaViolation   = "schema_violation"
	CodeRequiredField     = "required_field_missing"
	CodeInvalidType       = "invalid_type"
	CodeInvalidEnum       = "invalid_enum_value"
	CodeInvalidUUID       = "invalid_uuid"
	CodeInvalidTimestamp  = "invalid_timestamp"
	CodeMissingTimezone   = "missing_timezone"
	CodeInvalidContact    = "invalid_contact"
	CodeValueOutOfRange   = "value_out_of_range"
	CodeInvalidURL        = "invalid_url"
	CodeInvalidMIMEType   = "invalid_content_type"
	CodePayloadDecode     = "payload_decode_failed"
	CodeEvidenceItemSize  = "evidence_item_too_large"
	CodeEvidenceTotalSize = "evidence_total_too_large"
	CodeHashMismatch      = "evidence_hash_mismatch"
	CodeHashFormat        = "invalid_hash_format"
	CodeUnknownField      = "unknown_field"
	CodeParseFailed       = "parse_failed"
	CodeUnknownSource     = "unknown_evidence_source"
	CodeRulesUnavailable  = "category_rules_unavailable"
)

// Error is a single validation violation.
type Error struct {
	// Field is the dotted path of the violating field (e.g. "reporter.contact",
	// "evidence.0.payload"), or "$root" for document-level violations.
	Field string

	// Code is the stable machine-readable reason code.
	Code string

	// Message is the human-readable reason.
	Message string
}

func (e Error) String() string {
	return fmt.Sprintf("%s [%s]: %s", e.Field, e.Code, e.Message)
}

// Warning is a non-fatal validation observation.
type Warning struct {
	Field   string
	Code    string
	Message string
}

// Result accumulates the outcome of one validation pass. The zero value
// is a valid (empty) result. Results are transient: produced fresh per
// call and never retained by the validators.
type Result struct {
	Errors   []Error
	Warnings []Warning
}

// Valid reports whether the result carries no errors.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// AddError appends a violation.
func (r *Result) AddError(field, code, message string) {
	r.Errors = append(r.Errors, Error{Field: field, Code: code, Message: message})
}

// AddErrorf appends a violation with a formatted message.
func (r *Result) AddErrorf(field, code, format string, args ...interface{}) {
	r.AddError(field, code, fmt.Sprintf(format, args...))
}

// AddWarning appends a non-fatal observation.
func (r *Result) AddWarning(field, code, message string) {
	r.Warnings = append(r.Warnings, Warning{Field: field, Code: code, Message: message})
}

// Merge appends another result's errors and warnings, preserving order.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Dedupe removes duplicate errors by (field, code), keeping first occurrences.
func (r *Result) Dedupe() {
	seen := make(map[string]bool, len(r.Errors))
	unique := r.Errors[:0]
	for _, e := range r.Errors {
		key := e.Field + "\x00" + e.Code
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, e)
	}
	r.Errors = unique
}

// PromoteWarnings converts all warnings into errors (strict validation).
func (r *Result) PromoteWarnings() {
	for _, w := range r.Warnings {
		r.Errors = append(r.Errors, Error(w))
	}
	r.Warnings = nil
}

// Err returns nil when the result is valid, otherwise a *FailedError
// carrying the full error list.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]Error, len(r.Errors))
	copy(errs, r.Errors)
	return &FailedError{Errors: errs}
}

// FailedError is the error form of an invalid Result.
type FailedError struct {
	Errors []Error
}

// Error implements the error interface.
func (e *FailedError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.String()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// HasCode reports whether any error carries the given reason code.
// Useful for filtering cryptographic-integrity failures from structural ones.
func (e *FailedError) HasCode(code string) bool {
	for _, err := range e.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}

// FieldErrors returns the errors recorded against a field path.
func (e *FailedError) FieldErrors(field string) []Error {
	var out []Error
	for _, err := range e.Errors {
		if err.Field == field {
			out = append(out, err)
		}
	}
	return out
}
