package generator

import (
	"github.com/xarfio/sdk/pkg/errors"
	"github.com/xarfio/sdk/pkg/xarf"
)

var sampleReporter = xarf.Reporter{
	Org:     "Example Abuse Desk",
	Contact: "abuse@example.com",
	Type:    xarf.ReporterAutomated,
}

// SampleReport returns a minimal valid report for a category. Useful for
// documentation, integration tests, and feed onboarding.
func (g *Generator) SampleReport(category xarf.Category) (*xarf.Report, error) {
	opts := &Options{
		EvidenceSource: xarf.SourceAutomatedScan,
		Description:    "Sample " + string(category) + " report",
	}

	destPort := 22

	switch category {
	case xarf.CategoryMessaging:
		return g.CreateMessagingReport("spam", sampleReporter, "192.0.2.10", &xarf.MessagingDetails{
			Protocol: "smtp",
			SMTPFrom: "spammer@example.net",
			Subject:  "Unsolicited offer",
		}, opts)
	case xarf.CategoryConnection:
		return g.CreateConnectionReport("brute_force", sampleReporter, "192.0.2.11", &xarf.ConnectionDetails{
			DestinationIP:   "198.51.100.5",
			DestinationPort: &destPort,
			Protocol:        "tcp",
			AttackType:      "ssh",
		}, opts)
	case xarf.CategoryContent:
		return g.CreateContentReport("phishing", sampleReporter, "192.0.2.12", &xarf.ContentDetails{
			URL: "https://malicious.example.org/login",
		}, opts)
	case xarf.CategoryInfrastructure:
		return g.CreateReport(category, "botnet", sampleReporter, "192.0.2.13", &xarf.InfrastructureDetails{
			DomainName: "c2.example.org",
		}, opts)
	case xarf.CategoryCopyright:
		return g.CreateReport(category, "dmca", sampleReporter, "192.0.2.14", &xarf.CopyrightDetails{
			WorkTitle:     "Example Film",
			RightsHolder:  "Example Studios",
			InfringingURL: "https://piracy.example.org/film",
		}, opts)
	case xarf.CategoryVulnerability:
		return g.CreateReport(category, "cve", sampleReporter, "192.0.2.15", &xarf.VulnerabilityDetails{
			VulnerabilityType: "remote_code_execution",
			CVEID:             "CVE-2024-0001",
			AffectedService:   "httpd",
		}, opts)
	case xarf.CategoryReputation:
		return g.CreateReport(category, "blocklist", sampleReporter, "192.0.2.16", &xarf.ReputationDetails{
			BlocklistName: "example-dnsbl",
			ListingReason: "spam source",
		}, opts)
	default:
		return nil, errors.E(errors.KindGeneration, "generator.SampleReport", "unknown category "+string(category))
	}
}
