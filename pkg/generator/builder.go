package generator

import (
	"time"

	"github.com/xarfio/sdk/pkg/xarf"
)

// Builder assembles a report field by field. Build runs the same
// validation as the Create calls, so an invalid chain fails at the end
// with the full error list.
type Builder struct {
	g      *Generator
	report xarf.Report
	err    error
}

// NewBuilder starts a builder for the given category.
func (g *Generator) NewBuilder(category xarf.Category) *Builder {
	return &Builder{
		g: g,
		report: xarf.Report{
			XARFVersion: xarf.Version,
			Category:    category,
		},
	}
}

// Type sets the category-specific report type.
func (b *Builder) Type(typ string) *Builder {
	b.report.Type = typ
	return b
}

// Reporter sets the reporting organization.
func (b *Builder) Reporter(reporter xarf.Reporter) *Builder {
	b.report.Reporter = reporter
	return b
}

// Source sets the reported source identifier (IP, domain, or URL).
func (b *Builder) Source(identifier string) *Builder {
	b.report.SourceIdentifier = identifier
	return b
}

// EvidenceSource sets how the evidence was obtained.
func (b *Builder) EvidenceSource(source xarf.EvidenceSource) *Builder {
	b.report.EvidenceSource = source
	return b
}

// ReportID overrides the auto-generated report ID.
func (b *Builder) ReportID(id string) *Builder {
	b.report.ReportID = id
	return b
}

// Timestamp overrides the auto-generated timestamp.
func (b *Builder) Timestamp(ts time.Time) *Builder {
	b.report.Timestamp = ts
	return b
}

// Details attaches the category-specific detail struct.
func (b *Builder) Details(details any) *Builder {
	if b.err == nil {
		b.err = attachDetails(&b.report, details)
	}
	return b
}

// Evidence appends an evidence item.
func (b *Builder) Evidence(item xarf.Evidence) *Builder {
	b.report.Evidence = append(b.report.Evidence, item)
	return b
}

// Tag appends a tag.
func (b *Builder) Tag(tag string) *Builder {
	b.report.Tags = append(b.report.Tags, tag)
	return b
}

// Description sets the free-form description.
func (b *Builder) Description(description string) *Builder {
	b.report.Description = description
	return b
}

// Severity sets the severity level.
func (b *Builder) Severity(severity string) *Builder {
	b.report.Severity = severity
	return b
}

// Confidence sets the reporter's confidence in [0, 1].
func (b *Builder) Confidence(confidence float64) *Builder {
	b.report.Confidence = &confidence
	return b
}

// Build finalizes and validates the report.
func (b *Builder) Build() (*xarf.Report, error) {
	if b.err != nil {
		return nil, b.err
	}
	report := b.report
	return b.g.finalize("generator.Build", &report)
}
