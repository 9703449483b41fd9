// Package legacy converts XARF v3 documents into the v4 wire shape.
//
// v3 reports carry a top-level "Version" marker and nest everything under
// "ReporterInfo" and "Report". Conversion is a total transform: optional v3
// fields that are absent simply stay absent in the v4 output, and only the
// fields without which no meaningful v4 report can exist (report class,
// report type, source IP) abort the conversion.
package legacy

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xarfio/sdk/pkg/core"
	"github.com/xarfio/sdk/pkg/errors"
)

// categoryMap translates v3 report classes (lowercased) to v4 categories.
var categoryMap = map[string]string{
	"activity":       "messaging",
	"messaging":      "messaging",
	"connection":     "connection",
	"content":        "content",
	"infrastructure": "infrastructure",
	"copyright":      "copyright",
	"vulnerability":  "vulnerability",
	"reputation":     "reputation",
	"fraud":          "content",
}

// IsLegacy reports whether raw is a v3 document: it carries the v3
// "Version" marker and no v4 "xarf_version".
func IsLegacy(raw map[string]any) bool {
	if _, v4 := raw["xarf_version"]; v4 {
		return false
	}
	_, v3 := raw["Version"]
	return v3
}

// Convert transforms a v3 document into the normalized v4 wire mapping.
// The result still goes through the full v4 validation pipeline; Convert
// only fails on v3 input missing the fields conversion cannot proceed
// without.
func Convert(raw map[string]any, logger core.Logger) (map[string]any, error) {
	const op = "legacy.Convert"

	if logger == nil {
		logger = &core.NopLogger{}
	}
	logger.Warn("parsing deprecated XARF v3 report, upgrade the producer to v4")

	report := subMap(raw, "Report")
	if report == nil {
		return nil, errors.E(errors.KindParse, op, "v3 document has no Report object")
	}

	reportClass := stringField(report, "ReportClass")
	reportType := stringField(report, "ReportType")
	if reportClass == "" {
		return nil, errors.E(errors.KindParse, op, "v3 Report.ReportClass is missing")
	}
	if reportType == "" {
		return nil, errors.E(errors.KindParse, op, "v3 Report.ReportType is missing")
	}

	source := subMap(report, "Source")
	sourceIP := stringField(source, "IP")
	if sourceIP == "" {
		return nil, errors.E(errors.KindParse, op, "v3 Report.Source.IP is missing")
	}

	category, ok := categoryMap[strings.ToLower(reportClass)]
	if !ok {
		category = "other"
	}
	typ := strings.ToLower(reportType)

	info := subMap(raw, "ReporterInfo")
	reporter := map[string]any{
		"org":     firstNonEmpty(stringField(info, "ReporterOrg"), "Unknown"),
		"contact": firstNonEmpty(stringField(info, "ReporterOrgEmail"), stringField(info, "ReporterContactEmail"), "unknown@example.com"),
		"type":    "automated",
	}

	timestamp := stringField(report, "Date")
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	additional := subMap(report, "AdditionalInfo")

	out := map[string]any{
		"xarf_version":      "4.0.0",
		"report_id":         uuid.NewString(),
		"timestamp":         timestamp,
		"reporter":          reporter,
		"source_identifier": sourceIP,
		"category":          category,
		"type":              typ,
		"evidence_source":   detectEvidenceSource(stringField(additional, "DetectionMethod")),
		"legacy_version":    "3",
		"_internal": map[string]any{
			"converted_from_v3": true,
			"original_version":  raw["Version"],
		},
	}

	tags := []string{
		"legacy:category:" + reportClass,
		"legacy:type:" + reportType,
	}

	switch category {
	case "messaging":
		out["protocol"] = firstNonEmpty(stringField(additional, "Protocol"), "smtp")
		copyField(additional, "SMTPFrom", out, "smtp_from")
		copyField(additional, "SMTPTo", out, "smtp_to")
		copyField(additional, "Subject", out, "subject")
		copyField(additional, "MessageId", out, "message_id")
	case "connection":
		copyField(additional, "DestinationIp", out, "destination_ip")
		out["protocol"] = firstNonEmpty(stringField(additional, "Protocol"), "tcp")
		copyField(additional, "DestinationPort", out, "destination_port")
		copyField(additional, "AttackType", out, "attack_type")
		copyField(additional, "PacketCount", out, "packet_count")
		copyField(additional, "ByteCount", out, "byte_count")
		if port, ok := source["Port"]; ok && port != nil {
			out["source_port"] = port
		}
	case "content":
		copyField(additional, "URL", out, "url")
	case "infrastructure":
		for _, key := range []string{"BotnetName", "MalwareFamily"} {
			if v := stringField(additional, key); v != "" {
				tags = append(tags, "legacy:"+strings.ToLower(key)+":"+v)
			}
		}
	}

	out["tags"] = tags

	if evidence := convertAttachments(report); len(evidence) > 0 {
		out["evidence"] = evidence
	}

	logger.Debug("converted v3 %s/%s report to v4 %s/%s", reportClass, reportType, category, typ)
	return out, nil
}

// detectEvidenceSource maps the free-form v3 DetectionMethod onto the v4
// evidence_source enumeration by substring. Unrecognized methods fall back
// to automated_scan.
func detectEvidenceSource(method string) string {
	m := strings.ToLower(method)
	switch {
	case strings.Contains(m, "spamtrap"):
		return "spamtrap"
	case strings.Contains(m, "honeypot"):
		return "honeypot"
	case strings.Contains(m, "user"), strings.Contains(m, "manual"):
		return "user_report"
	case strings.Contains(m, "vuln"):
		return "vulnerability_scan"
	case strings.Contains(m, "scan"):
		return "automated_scan"
	default:
		return "automated_scan"
	}
}

// convertAttachments turns v3 Attachment entries into v4 evidence items.
// Payloads stay base64 as-is; the v4 evidence validator decides whether
// they decode.
func convertAttachments(report map[string]any) []map[string]any {
	attachments, _ := report["Attachment"].([]any)
	if len(attachments) == 0 {
		return nil
	}
	evidence := make([]map[string]any, 0, len(attachments))
	for _, a := range attachments {
		att, ok := a.(map[string]any)
		if !ok {
			continue
		}
		item := map[string]any{
			"content_type": firstNonEmpty(stringField(att, "ContentType"), "text/plain"),
			"description":  firstNonEmpty(stringField(att, "Description"), "Evidence from v3 report"),
			"payload":      stringField(att, "Data"),
		}
		evidence = append(evidence, item)
	}
	return evidence
}

func subMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func copyField(src map[string]any, srcKey string, dst map[string]any, dstKey string) {
	if src == nil {
		return
	}
	if v, ok := src[srcKey]; ok && v != nil {
		if s, isStr := v.(string); isStr && s == "" {
			return
		}
		dst[dstKey] = v
	}
}
