package validate

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/xarfio/sdk/pkg/taxonomy"
)

func newSchemaValidator(t *testing.T) *SchemaValidator {
	t.Helper()
	tax, err := taxonomy.Default()
	if err != nil {
		t.Fatalf("taxonomy.Default() error: %v", err)
	}
	v, err := NewSchemaValidator(tax)
	if err != nil {
		t.Fatalf("NewSchemaValidator() error: %v", err)
	}
	return v
}

func decodeMap(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("fixture is not valid JSON: %v", err)
	}
	return m
}

const validMessaging = `{
	"xarf_version": "4.0.0",
	"report_id": "7a9c1b2e-3f4d-4a5b-8c6d-9e0f1a2b3c4d",
	"timestamp": "2024-03-01T12:00:00Z",
	"reporter": {"org": "Example Abuse Desk", "contact": "abuse@example.com", "type": "automated"},
	"source_identifier": "192.0.2.10",
	"category": "messaging",
	"type": "spam",
	"evidence_source": "spamtrap",
	"protocol": "smtp",
	"smtp_from": "spammer@example.net",
	"subject": "Buy now"
}`

func TestSchemaValidateAccepts(t *testing.T) {
	v := newSchemaValidator(t)
	result := v.Validate(decodeMap(t, validMessaging))
	if !result.Valid() {
		t.Fatalf("valid report rejected: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestSchemaValidateMissingRequired(t *testing.T) {
	v := newSchemaValidator(t)
	data := decodeMap(t, validMessaging)
	delete(data, "report_id")
	delete(data, "reporter")

	result := v.Validate(data)
	if result.Valid() {
		t.Fatal("report with missing required fields accepted")
	}

	for _, field := range []string{"report_id", "reporter"} {
		if !hasError(result, field, CodeRequiredField) {
			t.Errorf("no %s error for %s, got: %v", CodeRequiredField, field, result.Errors)
		}
	}
}

func TestSchemaValidateFieldFormats(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantField string
		wantCode  string
	}{
		{
			name:      "malformed uuid",
			mutate:    func(m map[string]any) { m["report_id"] = "not-a-uuid" },
			wantField: "report_id",
			wantCode:  CodeInvalidUUID,
		},
		{
			name:      "timestamp without timezone",
			mutate:    func(m map[string]any) { m["timestamp"] = "2024-03-01T12:00:00" },
			wantField: "timestamp",
			wantCode:  CodeMissingTimezone,
		},
		{
			name:      "garbage timestamp",
			mutate:    func(m map[string]any) { m["timestamp"] = "yesterday" },
			wantField: "timestamp",
			wantCode:  CodeInvalidTimestamp,
		},
		{
			name:      "unknown category",
			mutate:    func(m map[string]any) { m["category"] = "gossip" },
			wantField: "category",
			wantCode:  CodeInvalidEnum,
		},
		{
			name:      "type outside category",
			mutate:    func(m map[string]any) { m["type"] = "ddos" },
			wantField: "type",
			wantCode:  CodeInvalidEnum,
		},
		{
			name:      "wrong xarf_version",
			mutate:    func(m map[string]any) { m["xarf_version"] = "3.0.0" },
			wantField: "xarf_version",
			wantCode:  CodeSchemaViolation,
		},
		{
			name: "bad reporter contact",
			mutate: func(m map[string]any) {
				m["reporter"].(map[string]any)["contact"] = "not-an-email"
			},
			wantField: "reporter.contact",
			wantCode:  CodeSchemaViolation,
		},
		{
			name:      "confidence above one",
			mutate:    func(m map[string]any) { m["confidence"] = 1.5 },
			wantField: "confidence",
			wantCode:  CodeSchemaViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newSchemaValidator(t)
			data := decodeMap(t, validMessaging)
			tt.mutate(data)

			result := v.Validate(data)
			if result.Valid() {
				t.Fatal("mutated report accepted")
			}
			if !hasError(result, tt.wantField, tt.wantCode) {
				t.Errorf("no %s error at %s, got: %v", tt.wantCode, tt.wantField, result.Errors)
			}
		})
	}
}

func TestSchemaValidateWarnings(t *testing.T) {
	v := newSchemaValidator(t)
	data := decodeMap(t, validMessaging)
	data["evidence_source"] = "future_collector"
	data["x_vendor_extension"] = "opaque"

	result := v.Validate(data)
	if !result.Valid() {
		t.Fatalf("unknown source and field must stay warnings, got errors: %v", result.Errors)
	}
	if !hasWarning(result, "evidence_source", CodeUnknownSource) {
		t.Errorf("no unknown-source warning, got: %v", result.Warnings)
	}
	if !hasWarning(result, "x_vendor_extension", CodeUnknownField) {
		t.Errorf("no unknown-field warning, got: %v", result.Warnings)
	}
}

func TestSchemaValidateIdempotent(t *testing.T) {
	v := newSchemaValidator(t)
	data := decodeMap(t, validMessaging)
	delete(data, "timestamp")
	data["category"] = "gossip"

	first := v.Validate(data)
	second := v.Validate(data)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated validation of identical input diverged:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func hasError(r Result, field, code string) bool {
	for _, e := range r.Errors {
		if e.Field == field && e.Code == code {
			return true
		}
	}
	return false
}

func hasWarning(r Result, field, code string) bool {
	for _, w := range r.Warnings {
		if w.Field == field && w.Code == code {
			return true
		}
	}
	return false
}
