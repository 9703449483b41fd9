package generator

import (
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/xarfio/sdk/pkg/errors"
	"github.com/xarfio/sdk/pkg/metrics"
	"github.com/xarfio/sdk/pkg/parser"
	"github.com/xarfio/sdk/pkg/validate"
	"github.com/xarfio/sdk/pkg/xarf"
)

var testReporter = xarf.Reporter{
	Org:     "Example Abuse Desk",
	Contact: "abuse@example.com",
	Type:    xarf.ReporterAutomated,
}

func newGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g
}

func TestCreateMessagingReport(t *testing.T) {
	g := newGenerator(t)

	report, err := g.CreateMessagingReport("spam", testReporter, "192.0.2.10", &xarf.MessagingDetails{
		Protocol: "smtp",
		SMTPFrom: "spammer@example.net",
		Subject:  "Unsolicited offer",
	}, &Options{EvidenceSource: xarf.SourceSpamtrap})
	if err != nil {
		t.Fatalf("CreateMessagingReport() error: %v", err)
	}

	if report.XARFVersion != xarf.Version {
		t.Errorf("XARFVersion = %q", report.XARFVersion)
	}
	if _, err := uuid.Parse(report.ReportID); err != nil {
		t.Errorf("ReportID %q is not a UUID", report.ReportID)
	}
	if report.Timestamp.IsZero() || report.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp = %v, want non-zero UTC", report.Timestamp)
	}
}

func TestCreateConnectionReportMissingProtocol(t *testing.T) {
	g := newGenerator(t)

	_, err := g.CreateConnectionReport("ddos", testReporter, "192.0.2.11", &xarf.ConnectionDetails{
		DestinationIP: "198.51.100.5",
	}, &Options{EvidenceSource: xarf.SourceHoneypot})
	if err == nil {
		t.Fatal("report without protocol accepted")
	}
	if !errors.IsGenerationError(err) {
		t.Fatalf("error kind = %v, want generation", errors.GetKind(err))
	}

	var failed *validate.FailedError
	if !stderrors.As(err, &failed) {
		t.Fatalf("error does not carry the validation detail: %v", err)
	}
	if len(failed.FieldErrors("protocol")) == 0 {
		t.Errorf("no protocol error in %v", failed.Errors)
	}
}

func TestCreateReportDetailMismatch(t *testing.T) {
	g := newGenerator(t)

	_, err := g.CreateReport(xarf.CategoryMessaging, "spam", testReporter, "192.0.2.10",
		&xarf.ConnectionDetails{DestinationIP: "198.51.100.5", Protocol: "tcp"}, nil)
	if !errors.IsGenerationError(err) {
		t.Fatalf("error = %v, want generation kind", err)
	}
}

func TestGeneratedReportParsesBack(t *testing.T) {
	g := newGenerator(t)
	p, err := parser.New(parser.WithStrict(true))
	if err != nil {
		t.Fatalf("parser.New() error: %v", err)
	}

	confidence := 0.9
	report, err := g.CreateContentReport("phishing", testReporter, "203.0.113.7", &xarf.ContentDetails{
		URL: "https://malicious.example.org/login",
	}, &Options{
		EvidenceSource: xarf.SourceUserReport,
		Severity:       "high",
		Confidence:     &confidence,
		Tags:           []string{"campaign:atlas"},
	})
	if err != nil {
		t.Fatalf("CreateContentReport() error: %v", err)
	}

	out, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	parsed, err := p.Parse(out)
	if err != nil {
		t.Fatalf("strict re-parse of generated report failed: %v", err)
	}
	if parsed.Content == nil || parsed.Content.URL != report.Content.URL {
		t.Errorf("content details lost in round trip: %+v", parsed.Content)
	}
	if parsed.Severity != "high" || parsed.Confidence == nil || *parsed.Confidence != 0.9 {
		t.Errorf("optional fields lost: severity=%q confidence=%v", parsed.Severity, parsed.Confidence)
	}
}

func TestBuilder(t *testing.T) {
	g := newGenerator(t)

	evidence, err := NewEvidence("text/plain", "ssh auth log excerpt", []byte("Failed password for root"))
	if err != nil {
		t.Fatalf("NewEvidence() error: %v", err)
	}

	destPort := 22
	report, err := g.NewBuilder(xarf.CategoryConnection).
		Type("brute_force").
		Reporter(testReporter).
		Source("192.0.2.12").
		EvidenceSource(xarf.SourceHoneypot).
		Details(&xarf.ConnectionDetails{
			DestinationIP:   "198.51.100.5",
			DestinationPort: &destPort,
			Protocol:        "tcp",
		}).
		Evidence(evidence).
		Tag("honeypot:eu-west").
		Severity("medium").
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if report.Connection == nil || report.Connection.DestinationIP != "198.51.100.5" {
		t.Errorf("connection details = %+v", report.Connection)
	}
	if len(report.Evidence) != 1 || !strings.HasPrefix(report.Evidence[0].Hash, "sha256:") {
		t.Errorf("evidence = %+v", report.Evidence)
	}
}

func TestBuilderInvalidFailsAtBuild(t *testing.T) {
	g := newGenerator(t)

	_, err := g.NewBuilder(xarf.CategoryConnection).
		Type("ddos").
		Reporter(testReporter).
		Source("192.0.2.12").
		EvidenceSource(xarf.SourceHoneypot).
		Build()
	if !errors.IsGenerationError(err) {
		t.Fatalf("error = %v, want generation kind", err)
	}
}

func TestNewEvidenceHashMatches(t *testing.T) {
	content := []byte("payload bytes")
	e, err := NewEvidence("application/octet-stream", "", content)
	if err != nil {
		t.Fatalf("NewEvidence() error: %v", err)
	}

	result := validate.ValidateEvidence([]xarf.Evidence{e})
	if !result.Valid() {
		t.Errorf("generated evidence rejected: %v", result.Errors)
	}
}

func TestSampleReports(t *testing.T) {
	g := newGenerator(t)
	collector := metrics.NewInMemoryCollector()
	gm := newGenerator(t, WithMetrics(collector))

	categories := []xarf.Category{
		xarf.CategoryMessaging, xarf.CategoryConnection, xarf.CategoryContent,
		xarf.CategoryInfrastructure, xarf.CategoryCopyright,
		xarf.CategoryVulnerability, xarf.CategoryReputation,
	}

	for _, category := range categories {
		t.Run(string(category), func(t *testing.T) {
			report, err := g.SampleReport(category)
			if err != nil {
				t.Fatalf("SampleReport(%s) error: %v", category, err)
			}
			if report.Category != category {
				t.Errorf("category = %v", report.Category)
			}
		})
	}

	if _, err := gm.SampleReport(xarf.CategoryMessaging); err != nil {
		t.Fatalf("SampleReport() error: %v", err)
	}
	if got := collector.GetCounter(metrics.GeneratorReportsTotal.Name, "category", "messaging", "status", "generated"); got != 1 {
		t.Errorf("generated counter = %v, want 1", got)
	}
}
