package taxonomy

import (
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	tax, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	want := []string{"connection", "content", "copyright", "infrastructure", "messaging", "reputation", "vulnerability"}
	if got := tax.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestIsValidType(t *testing.T) {
	tax, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	tests := []struct {
		category string
		typ      string
		want     bool
	}{
		{"messaging", "spam", true},
		{"messaging", "phishing", true},
		{"connection", "ddos", true},
		{"connection", "brute_force", true},
		{"content", "malware_hosting", true},
		{"copyright", "dmca", true},
		{"vulnerability", "cve", true},
		{"reputation", "blocklist", true},
		{"messaging", "ddos", false},
		{"connection", "spam", false},
		{"nonexistent", "spam", false},
		{"messaging", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.category+"/"+tt.typ, func(t *testing.T) {
			if got := tax.IsValidType(tt.category, tt.typ); got != tt.want {
				t.Errorf("IsValidType(%q, %q) = %v, want %v", tt.category, tt.typ, got, tt.want)
			}
		})
	}
}

func TestRequiredFields(t *testing.T) {
	tax, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	tests := []struct {
		category string
		want     []string
	}{
		{"connection", []string{"destination_ip", "protocol"}},
		{"content", []string{"url"}},
		{"messaging", []string{}},
		{"nonexistent", nil},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := tax.RequiredFields(tt.category)
			if len(got) != len(tt.want) {
				t.Fatalf("RequiredFields(%q) = %v, want %v", tt.category, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("RequiredFields(%q)[%d] = %q, want %q", tt.category, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEvidenceSources(t *testing.T) {
	tax, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	if got := len(tax.EvidenceSources()); got != 8 {
		t.Errorf("EvidenceSources() has %d entries, want 8", got)
	}

	for _, source := range []string{"spamtrap", "honeypot", "user_report", "automated_scan", "manual_analysis", "vulnerability_scan", "researcher_analysis", "threat_intelligence"} {
		if !tax.IsValidEvidenceSource(source) {
			t.Errorf("IsValidEvidenceSource(%q) = false, want true", source)
		}
	}
	if tax.IsValidEvidenceSource("crystal_ball") {
		t.Error("IsValidEvidenceSource(crystal_ball) = true, want false")
	}
}

func TestIsValidSeverity(t *testing.T) {
	tax, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	for _, s := range []string{"low", "medium", "high", "critical"} {
		if !tax.IsValidSeverity(s) {
			t.Errorf("IsValidSeverity(%q) = false, want true", s)
		}
	}
	if tax.IsValidSeverity("catastrophic") {
		t.Error("IsValidSeverity(catastrophic) = true, want false")
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "{{{"},
		{"no categories", "evidence_sources: [spamtrap]"},
		{"category without types", "categories:\n  messaging:\n    required: []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.yaml)); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestLoadOverride(t *testing.T) {
	custom := `
categories:
  messaging:
    types: [spam, newsletter_abuse]
    required: []
evidence_sources: [spamtrap]
severities: [low]
`
	tax, err := Load([]byte(custom))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !tax.IsValidType("messaging", "newsletter_abuse") {
		t.Error("custom type not recognized")
	}
	if tax.IsValidCategory("connection") {
		t.Error("override should not carry default categories")
	}
}
