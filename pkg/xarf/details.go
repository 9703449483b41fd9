package xarf

import "time"

// MessagingDetails carries fields specific to messaging reports
// (spam, phishing, malware distribution via email or messaging).
type MessagingDetails struct {
	Protocol          string `json:"protocol,omitempty"`
	SMTPFrom          string `json:"smtp_from,omitempty"`
	SMTPTo            string `json:"smtp_to,omitempty"`
	Subject           string `json:"subject,omitempty"`
	MessageID         string `json:"message_id,omitempty"`
	SenderDisplayName string `json:"sender_display_name,omitempty"`
	TargetVictim      string `json:"target_victim,omitempty"`
	MessageContent    string `json:"message_content,omitempty"`
}

// ConnectionDetails carries fields specific to connection reports
// (DDoS, port scans, brute force, unauthorized access attempts).
type ConnectionDetails struct {
	DestinationIP      string   `json:"destination_ip,omitempty"`
	DestinationPort    *int     `json:"destination_port,omitempty"`
	SourcePort         *int     `json:"source_port,omitempty"`
	Protocol           string   `json:"protocol,omitempty"`
	AttackType         string   `json:"attack_type,omitempty"`
	DurationMinutes    int      `json:"duration_minutes,omitempty"`
	PacketCount        int64    `json:"packet_count,omitempty"`
	ByteCount          int64    `json:"byte_count,omitempty"`
	AttemptCount       int      `json:"attempt_count,omitempty"`
	UsernamesAttempted []string `json:"usernames_attempted,omitempty"`
}

// ContentDetails carries fields specific to content reports
// (malicious content, defacement, malware hosting).
type ContentDetails struct {
	URL                    string   `json:"url,omitempty"`
	ContentType            string   `json:"content_type,omitempty"`
	AttackType             string   `json:"attack_type,omitempty"`
	AffectedPages          []string `json:"affected_pages,omitempty"`
	CMSPlatform            string   `json:"cms_platform,omitempty"`
	VulnerabilityExploited string   `json:"vulnerability_exploited,omitempty"`
}

// InfrastructureDetails carries fields specific to infrastructure reports
// (DNS abuse, BGP hijacking, botnet command and control).
type InfrastructureDetails struct {
	DomainName        string   `json:"domain_name,omitempty"`
	DNSRecordType     string   `json:"dns_record_type,omitempty"`
	MaliciousRecords  []string `json:"malicious_records,omitempty"`
	ASN               *int     `json:"asn,omitempty"`
	Prefix            string   `json:"prefix,omitempty"`
	LegitimateOrigin  *int     `json:"legitimate_origin,omitempty"`
	CertificateSerial string   `json:"certificate_serial,omitempty"`
	CertificateIssuer string   `json:"certificate_issuer,omitempty"`
}

// CopyrightDetails carries fields specific to copyright reports
// (DMCA notices, piracy, trademark violations).
type CopyrightDetails struct {
	WorkTitle     string `json:"work_title,omitempty"`
	WorkType      string `json:"work_type,omitempty"`
	RightsHolder  string `json:"rights_holder,omitempty"`
	InfringingURL string `json:"infringing_url,omitempty"`
	OriginalURL   string `json:"original_url,omitempty"`
	DMCANoticeID  string `json:"dmca_notice_id,omitempty"`
}

// VulnerabilityDetails carries fields specific to vulnerability reports
// (open resolvers, exposed services, misconfigurations).
type VulnerabilityDetails struct {
	VulnerabilityType string   `json:"vulnerability_type,omitempty"`
	CVEID             string   `json:"cve_id,omitempty"`
	CVSSScore         *float64 `json:"cvss_score,omitempty"`
	AffectedService   string   `json:"affected_service,omitempty"`
	AffectedVersion   string   `json:"affected_version,omitempty"`
	Remediation       string   `json:"remediation,omitempty"`
}

// ReputationDetails carries fields specific to reputation reports
// (blocklist entries, reputation scoring).
type ReputationDetails struct {
	BlocklistName   string     `json:"blocklist_name,omitempty"`
	BlocklistURL    string     `json:"blocklist_url,omitempty"`
	ListingReason   string     `json:"listing_reason,omitempty"`
	FirstSeen       *time.Time `json:"first_seen,omitempty"`
	LastSeen        *time.Time `json:"last_seen,omitempty"`
	ReputationScore *float64   `json:"reputation_score,omitempty"`
}
