package parser

import (
	"github.com/xarfio/sdk/pkg/core"
	"github.com/xarfio/sdk/pkg/metrics"
	"github.com/xarfio/sdk/pkg/taxonomy"
)

// Option configures a Parser.
type Option func(*Parser)

// WithStrict sets the parsing mode. In strict mode any validation error
// fails the parse; in lenient mode (the default) business-rule and
// evidence errors accumulate and a typed report is still returned when
// the document is structurally sound.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger core.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector. Defaults to a no-op collector.
func WithMetrics(collector metrics.Collector) Option {
	return func(p *Parser) {
		if collector != nil {
			p.metrics = collector
		}
	}
}

// WithTaxonomy overrides the embedded default taxonomy.
func WithTaxonomy(tax *taxonomy.Taxonomy) Option {
	return func(p *Parser) {
		if tax != nil {
			p.tax = tax
		}
	}
}
