package xarf

import (
	"encoding/json"
	"time"
)

// wireReport is the flat v4 wire shape. Category-specific fields live at
// the top level of the JSON object; the typed Report keeps them in detail
// structs, so (un)marshalling converts between the two layouts.
//
// "protocol" and "attack_type" are shared between categories on the wire
// and are routed to the matching detail struct by Category.
type wireReport struct {
	XARFVersion      string         `json:"xarf_version"`
	ReportID         string         `json:"report_id"`
	Timestamp        time.Time      `json:"timestamp"`
	Reporter         Reporter       `json:"reporter"`
	SourceIdentifier string         `json:"source_identifier"`
	Category         Category       `json:"category"`
	Type             string         `json:"type"`
	EvidenceSource   EvidenceSource `json:"evidence_source,omitempty"`
	Evidence         []Evidence     `json:"evidence,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
	Description      string         `json:"description,omitempty"`
	Severity         string         `json:"severity,omitempty"`
	Confidence       *float64       `json:"confidence,omitempty"`
	LegacyVersion    string         `json:"legacy_version,omitempty"`
	Internal         map[string]any `json:"_internal,omitempty"`

	// Shared between categories
	Protocol   string `json:"protocol,omitempty"`
	AttackType string `json:"attack_type,omitempty"`

	// Messaging
	SMTPFrom          string `json:"smtp_from,omitempty"`
	SMTPTo            string `json:"smtp_to,omitempty"`
	Subject           string `json:"subject,omitempty"`
	MessageID         string `json:"message_id,omitempty"`
	SenderDisplayName string `json:"sender_display_name,omitempty"`
	TargetVictim      string `json:"target_victim,omitempty"`
	MessageContent    string `json:"message_content,omitempty"`

	// Connection
	DestinationIP      string   `json:"destination_ip,omitempty"`
	DestinationPort    *int     `json:"destination_port,omitempty"`
	SourcePort         *int     `json:"source_port,omitempty"`
	DurationMinutes    int      `json:"duration_minutes,omitempty"`
	PacketCount        int64    `json:"packet_count,omitempty"`
	ByteCount          int64    `json:"byte_count,omitempty"`
	AttemptCount       int      `json:"attempt_count,omitempty"`
	UsernamesAttempted []string `json:"usernames_attempted,omitempty"`

	// Content
	URL                    string   `json:"url,omitempty"`
	ContentType            string   `json:"content_type,omitempty"`
	AffectedPages          []string `json:"affected_pages,omitempty"`
	CMSPlatform            string   `json:"cms_platform,omitempty"`
	VulnerabilityExploited string   `json:"vulnerability_exploited,omitempty"`

	// Infrastructure
	DomainName        string   `json:"domain_name,omitempty"`
	DNSRecordType     string   `json:"dns_record_type,omitempty"`
	MaliciousRecords  []string `json:"malicious_records,omitempty"`
	ASN               *int     `json:"asn,omitempty"`
	Prefix            string   `json:"prefix,omitempty"`
	LegitimateOrigin  *int     `json:"legitimate_origin,omitempty"`
	CertificateSerial string   `json:"certificate_serial,omitempty"`
	CertificateIssuer string   `json:"certificate_issuer,omitempty"`

	// Copyright
	WorkTitle     string `json:"work_title,omitempty"`
	WorkType      string `json:"work_type,omitempty"`
	RightsHolder  string `json:"rights_holder,omitempty"`
	InfringingURL string `json:"infringing_url,omitempty"`
	OriginalURL   string `json:"original_url,omitempty"`
	DMCANoticeID  string `json:"dmca_notice_id,omitempty"`

	// Vulnerability
	VulnerabilityType string   `json:"vulnerability_type,omitempty"`
	CVEID             string   `json:"cve_id,omitempty"`
	CVSSScore         *float64 `json:"cvss_score,omitempty"`
	AffectedService   string   `json:"affected_service,omitempty"`
	AffectedVersion   string   `json:"affected_version,omitempty"`
	Remediation       string   `json:"remediation,omitempty"`

	// Reputation
	BlocklistName   string     `json:"blocklist_name,omitempty"`
	BlocklistURL    string     `json:"blocklist_url,omitempty"`
	ListingReason   string     `json:"listing_reason,omitempty"`
	FirstSeen       *time.Time `json:"first_seen,omitempty"`
	LastSeen        *time.Time `json:"last_seen,omitempty"`
	ReputationScore *float64   `json:"reputation_score,omitempty"`
}

// MarshalJSON emits the flat v4 wire representation.
func (r Report) MarshalJSON() ([]byte, error) {
	w := wireReport{
		XARFVersion:      r.XARFVersion,
		ReportID:         r.ReportID,
		Timestamp:        r.Timestamp,
		Reporter:         r.Reporter,
		SourceIdentifier: r.SourceIdentifier,
		Category:         r.Category,
		Type:             r.Type,
		EvidenceSource:   r.EvidenceSource,
		Evidence:         r.Evidence,
		Tags:             r.Tags,
		Description:      r.Description,
		Severity:         r.Severity,
		Confidence:       r.Confidence,
		LegacyVersion:    r.LegacyVersion,
		Internal:         r.Internal,
	}

	if d := r.Messaging; d != nil {
		w.Protocol = d.Protocol
		w.SMTPFrom = d.SMTPFrom
		w.SMTPTo = d.SMTPTo
		w.Subject = d.Subject
		w.MessageID = d.MessageID
		w.SenderDisplayName = d.SenderDisplayName
		w.TargetVictim = d.TargetVictim
		w.MessageContent = d.MessageContent
	}
	if d := r.Connection; d != nil {
		w.Protocol = d.Protocol
		w.AttackType = d.AttackType
		w.DestinationIP = d.DestinationIP
		w.DestinationPort = d.DestinationPort
		w.SourcePort = d.SourcePort
		w.DurationMinutes = d.DurationMinutes
		w.PacketCount = d.PacketCount
		w.ByteCount = d.ByteCount
		w.AttemptCount = d.AttemptCount
		w.UsernamesAttempted = d.UsernamesAttempted
	}
	if d := r.Content; d != nil {
		w.AttackType = d.AttackType
		w.URL = d.URL
		w.ContentType = d.ContentType
		w.AffectedPages = d.AffectedPages
		w.CMSPlatform = d.CMSPlatform
		w.VulnerabilityExploited = d.VulnerabilityExploited
	}
	if d := r.Infrastructure; d != nil {
		w.DomainName = d.DomainName
		w.DNSRecordType = d.DNSRecordType
		w.MaliciousRecords = d.MaliciousRecords
		w.ASN = d.ASN
		w.Prefix = d.Prefix
		w.LegitimateOrigin = d.LegitimateOrigin
		w.CertificateSerial = d.CertificateSerial
		w.CertificateIssuer = d.CertificateIssuer
	}
	if d := r.Copyright; d != nil {
		w.WorkTitle = d.WorkTitle
		w.WorkType = d.WorkType
		w.RightsHolder = d.RightsHolder
		w.InfringingURL = d.InfringingURL
		w.OriginalURL = d.OriginalURL
		w.DMCANoticeID = d.DMCANoticeID
	}
	if d := r.Vulnerability; d != nil {
		w.VulnerabilityType = d.VulnerabilityType
		w.CVEID = d.CVEID
		w.CVSSScore = d.CVSSScore
		w.AffectedService = d.AffectedService
		w.AffectedVersion = d.AffectedVersion
		w.Remediation = d.Remediation
	}
	if d := r.Reputation; d != nil {
		w.BlocklistName = d.BlocklistName
		w.BlocklistURL = d.BlocklistURL
		w.ListingReason = d.ListingReason
		w.FirstSeen = d.FirstSeen
		w.LastSeen = d.LastSeen
		w.ReputationScore = d.ReputationScore
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes the flat v4 wire representation into the typed
// model, routing category-specific fields into the matching detail struct.
func (r *Report) UnmarshalJSON(data []byte) error {
	var w wireReport
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*r = Report{
		XARFVersion:      w.XARFVersion,
		ReportID:         w.ReportID,
		Timestamp:        w.Timestamp,
		Reporter:         w.Reporter,
		SourceIdentifier: w.SourceIdentifier,
		Category:         w.Category,
		Type:             w.Type,
		EvidenceSource:   w.EvidenceSource,
		Evidence:         w.Evidence,
		Tags:             w.Tags,
		Description:      w.Description,
		Severity:         w.Severity,
		Confidence:       w.Confidence,
		LegacyVersion:    w.LegacyVersion,
		Internal:         w.Internal,
	}

	switch w.Category {
	case CategoryMessaging:
		r.Messaging = &MessagingDetails{
			Protocol:          w.Protocol,
			SMTPFrom:          w.SMTPFrom,
			SMTPTo:            w.SMTPTo,
			Subject:           w.Subject,
			MessageID:         w.MessageID,
			SenderDisplayName: w.SenderDisplayName,
			TargetVictim:      w.TargetVictim,
			MessageContent:    w.MessageContent,
		}
	case CategoryConnection:
		r.Connection = &ConnectionDetails{
			DestinationIP:      w.DestinationIP,
			DestinationPort:    w.DestinationPort,
			SourcePort:         w.SourcePort,
			Protocol:           w.Protocol,
			AttackType:         w.AttackType,
			DurationMinutes:    w.DurationMinutes,
			PacketCount:        w.PacketCount,
			ByteCount:          w.ByteCount,
			AttemptCount:       w.AttemptCount,
			UsernamesAttempted: w.UsernamesAttempted,
		}
	case CategoryContent:
		r.Content = &ContentDetails{
			URL:                    w.URL,
			ContentType:            w.ContentType,
			AttackType:             w.AttackType,
			AffectedPages:          w.AffectedPages,
			CMSPlatform:            w.CMSPlatform,
			VulnerabilityExploited: w.VulnerabilityExploited,
		}
	case CategoryInfrastructure:
		r.Infrastructure = &InfrastructureDetails{
			DomainName:        w.DomainName,
			DNSRecordType:     w.DNSRecordType,
			MaliciousRecords:  w.MaliciousRecords,
			ASN:               w.ASN,
			Prefix:            w.Prefix,
			LegitimateOrigin:  w.LegitimateOrigin,
			CertificateSerial: w.CertificateSerial,
			CertificateIssuer: w.CertificateIssuer,
		}
	case CategoryCopyright:
		r.Copyright = &CopyrightDetails{
			WorkTitle:     w.WorkTitle,
			WorkType:      w.WorkType,
			RightsHolder:  w.RightsHolder,
			InfringingURL: w.InfringingURL,
			OriginalURL:   w.OriginalURL,
			DMCANoticeID:  w.DMCANoticeID,
		}
	case CategoryVulnerability:
		r.Vulnerability = &VulnerabilityDetails{
			VulnerabilityType: w.VulnerabilityType,
			CVEID:             w.CVEID,
			CVSSScore:         w.CVSSScore,
			AffectedService:   w.AffectedService,
			AffectedVersion:   w.AffectedVersion,
			Remediation:       w.Remediation,
		}
	case CategoryReputation:
		r.Reputation = &ReputationDetails{
			BlocklistName:   w.BlocklistName,
			BlocklistURL:    w.BlocklistURL,
			ListingReason:   w.ListingReason,
			FirstSeen:       w.FirstSeen,
			LastSeen:        w.LastSeen,
			ReputationScore: w.ReputationScore,
		}
	}

	return nil
}

// FromMap builds a typed Report from an already-normalized wire mapping.
func FromMap(m map[string]any) (*Report, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Map returns the report's wire representation as a generic mapping.
func (r *Report) Map() (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
