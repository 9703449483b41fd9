// Package xarf defines the typed XARF v4 report model.
//
// A Report carries the fields common to every category plus exactly one
// category detail struct; callers branch on the Category tag to reach the
// detail safely. Reports are constructed by the parser or generator and
// are not mutated after successful validation.
package xarf

import (
	"encoding/base64"
	"time"
)

// Version is the wire schema version this SDK emits.
const Version = "4.0.0"

// Evidence payload ceilings, enforced as hard validation failures.
const (
	// MaxEvidenceItemSize is the decoded size ceiling per evidence item (5 MB).
	MaxEvidenceItemSize = 5 * 1024 * 1024

	// MaxEvidenceTotalSize is the decoded aggregate ceiling per report (15 MB).
	MaxEvidenceTotalSize = 15 * 1024 * 1024
)

// Category is the top-level classification of a report.
type Category string

const (
	CategoryMessaging      Category = "messaging"
	CategoryConnection     Category = "connection"
	CategoryContent        Category = "content"
	CategoryInfrastructure Category = "infrastructure"
	CategoryCopyright      Category = "copyright"
	CategoryVulnerability  Category = "vulnerability"
	CategoryReputation     Category = "reputation"
)

// ReporterType classifies how a reporter produces reports.
type ReporterType string

const (
	ReporterAutomated ReporterType = "automated"
	ReporterManual    ReporterType = "manual"
	ReporterHybrid    ReporterType = "hybrid"
)

// EvidenceSource describes how the evidence backing a report was collected.
type EvidenceSource string

const (
	SourceSpamtrap           EvidenceSource = "spamtrap"
	SourceHoneypot           EvidenceSource = "honeypot"
	SourceUserReport         EvidenceSource = "user_report"
	SourceAutomatedScan      EvidenceSource = "automated_scan"
	SourceManualAnalysis     EvidenceSource = "manual_analysis"
	SourceVulnerabilityScan  EvidenceSource = "vulnerability_scan"
	SourceResearcherAnalysis EvidenceSource = "researcher_analysis"
	SourceThreatIntelligence EvidenceSource = "threat_intelligence"
)

// Delegate identifies a third party a report is filed on behalf of.
type Delegate struct {
	Org     string `json:"org"`
	Contact string `json:"contact"`
}

// Reporter identifies the organization that generated the report.
type Reporter struct {
	Org        string       `json:"org"`
	Contact    string       `json:"contact"`
	Type       ReporterType `json:"type"`
	OnBehalfOf *Delegate    `json:"on_behalf_of,omitempty"`
}

// Evidence is a single attached artifact supporting a report's claim.
// The payload is base64-encoded; Hash, when set, is "algorithm:hexvalue".
type Evidence struct {
	ContentType string `json:"content_type"`
	Description string `json:"description,omitempty"`
	Payload     string `json:"payload"`
	Hash        string `json:"hash,omitempty"`
}

// Decode returns the decoded payload bytes.
func (e Evidence) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(e.Payload)
}

// Report is a single structured abuse notification.
type Report struct {
	XARFVersion      string
	ReportID         string
	Timestamp        time.Time
	Reporter         Reporter
	SourceIdentifier string
	Category         Category
	Type             string
	EvidenceSource   EvidenceSource
	Evidence         []Evidence
	Tags             []string
	Description      string
	Severity         string
	Confidence       *float64

	// LegacyVersion is set when the report was converted from a prior
	// wire schema generation.
	LegacyVersion string

	// Internal is the private metadata bag, serialized under "_internal".
	// Not part of the public wire contract.
	Internal map[string]any

	// Exactly one of the following is non-nil, matching Category.
	Messaging      *MessagingDetails
	Connection     *ConnectionDetails
	Content        *ContentDetails
	Infrastructure *InfrastructureDetails
	Copyright      *CopyrightDetails
	Vulnerability  *VulnerabilityDetails
	Reputation     *ReputationDetails
}
