// Package parser turns raw XARF input (JSON text, bytes, files, or
// generic mappings) into validated typed reports.
//
// The pipeline is: decode, convert legacy v3 documents to the v4 shape,
// run the three validation layers (schema, business rules, evidence),
// then build the typed model. In strict mode any validation error fails
// the parse. In lenient mode business-rule and evidence errors accumulate
// and are retrievable through Errors(); only structurally broken documents
// fail outright, since no typed report can be built from them.
package parser

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/xarfio/sdk/pkg/compress"
	"github.com/xarfio/sdk/pkg/core"
	"github.com/xarfio/sdk/pkg/errors"
	"github.com/xarfio/sdk/pkg/legacy"
	"github.com/xarfio/sdk/pkg/metrics"
	"github.com/xarfio/sdk/pkg/taxonomy"
	"github.com/xarfio/sdk/pkg/validate"
	"github.com/xarfio/sdk/pkg/xarf"
)

// Parser parses and validates XARF reports. A Parser is safe for
// concurrent use; only the error-retrieval state behind Errors() and
// Warnings() is shared between calls, and it always reflects the most
// recently completed call.
type Parser struct {
	strict  bool
	logger  core.Logger
	metrics metrics.Collector
	tax     *taxonomy.Taxonomy

	schema *validate.SchemaValidator
	rules  *validate.BusinessRules

	mu           sync.Mutex
	lastErrors   []validate.Error
	lastWarnings []validate.Warning
}

// New creates a Parser. Without options it is lenient, silent, and uses
// the embedded default taxonomy.
func New(opts ...Option) (*Parser, error) {
	p := &Parser{
		logger:  &core.NopLogger{},
		metrics: &metrics.NopCollector{},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.tax == nil {
		tax, err := taxonomy.Default()
		if err != nil {
			return nil, err
		}
		p.tax = tax
	}

	schema, err := validate.NewSchemaValidator(p.tax)
	if err != nil {
		return nil, err
	}
	rules, err := validate.NewBusinessRules(p.tax)
	if err != nil {
		return nil, err
	}
	p.schema = schema
	p.rules = rules
	return p, nil
}

// Parse parses one report from a JSON string, a byte slice (optionally
// gzip- or zstd-compressed), a file path, or an already-decoded mapping.
// Validation errors from this call replace any recorded by earlier calls.
func (p *Parser) Parse(input any) (*xarf.Report, error) {
	start := time.Now()
	report, result, err := p.parse(input)
	p.metrics.HistogramObserve(metrics.ParserParseDuration.Name, time.Since(start).Seconds())
	p.setLast(result.Errors, result.Warnings)
	return report, err
}

// ParseFile parses a report from a file, transparently decompressing
// gzip and zstd content.
func (p *Parser) ParseFile(path string) (*xarf.Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(errors.KindParse, "parser.ParseFile", "cannot read file "+path, err)
	}
	return p.Parse(raw)
}

// Validate runs the full validation pipeline without building a typed
// report. Legacy documents are converted first, so the result always
// refers to v4 field paths. In strict mode warnings are promoted to
// errors. The returned error is non-nil only when the input cannot be
// decoded or converted at all.
func (p *Parser) Validate(input any) (validate.Result, error) {
	data, err := p.decode(input)
	if err != nil {
		return validate.Result{}, err
	}
	data, err = p.convertLegacy(data)
	if err != nil {
		return validate.Result{}, err
	}
	_, combined := p.validateMap(data)
	if p.strict {
		combined.PromoteWarnings()
	}
	p.setLast(combined.Errors, combined.Warnings)
	return combined, nil
}

// Errors returns the validation errors recorded by the most recent
// Parse, Validate, or batch call.
func (p *Parser) Errors() []validate.Error {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]validate.Error, len(p.lastErrors))
	copy(out, p.lastErrors)
	return out
}

// Warnings returns the warnings recorded by the most recent call.
func (p *Parser) Warnings() []validate.Warning {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]validate.Warning, len(p.lastWarnings))
	copy(out, p.lastWarnings)
	return out
}

func (p *Parser) setLast(errs []validate.Error, warns []validate.Warning) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErrors = errs
	p.lastWarnings = warns
}

// parse runs the full pipeline for one input. It returns the validation
// result alongside the report so batch parsing can aggregate per-element
// outcomes without touching shared state.
func (p *Parser) parse(input any) (*xarf.Report, validate.Result, error) {
	const op = "parser.Parse"
	var result validate.Result

	data, err := p.decode(input)
	if err != nil {
		p.metrics.CounterInc(metrics.ParserReportsTotal.Name, "category", "unknown", "status", "failed")
		return nil, result, err
	}

	data, err = p.convertLegacy(data)
	if err != nil {
		p.metrics.CounterInc(metrics.ParserReportsTotal.Name, "category", "unknown", "status", "failed")
		return nil, result, err
	}

	category, _ := data["category"].(string)
	if category == "" {
		category = "unknown"
	}

	schemaRes, combined := p.validateMap(data)
	result = combined

	if p.strict && !result.Valid() {
		p.metrics.CounterInc(metrics.ParserReportsTotal.Name, "category", category, "status", "failed")
		return nil, result, errors.E(errors.KindValidation, op, "report failed validation", result.Err())
	}
	if !schemaRes.Valid() {
		p.metrics.CounterInc(metrics.ParserReportsTotal.Name, "category", category, "status", "failed")
		return nil, result, errors.E(errors.KindValidation, op, "report failed structural validation", schemaRes.Err())
	}

	report, err := xarf.FromMap(data)
	if err != nil {
		p.metrics.CounterInc(metrics.ParserReportsTotal.Name, "category", category, "status", "failed")
		return nil, result, errors.E(errors.KindParse, op, "cannot build typed report", err)
	}

	if !result.Valid() {
		p.logger.Debug("parsed %s report %s with %d lenient-mode validation errors",
			category, report.ReportID, len(result.Errors))
	}
	p.metrics.CounterInc(metrics.ParserReportsTotal.Name, "category", category, "status", "parsed")
	return report, result, nil
}

// validateMap runs the three validation layers over a normalized v4
// mapping. The structural result is returned separately because it alone
// decides whether a typed report can be built in lenient mode.
func (p *Parser) validateMap(data map[string]any) (schemaRes, combined validate.Result) {
	schemaRes = p.schema.Validate(data)
	rulesRes := p.rules.Validate(data)
	evRes := validate.ValidateEvidence(evidenceItems(data))

	p.countIssues("schema", schemaRes)
	p.countIssues("business", rulesRes)
	p.countIssues("evidence", evRes)

	combined = validate.Result{}
	combined.Merge(schemaRes)
	combined.Merge(rulesRes)
	combined.Merge(evRes)
	combined.Dedupe()
	return schemaRes, combined
}

func (p *Parser) countIssues(layer string, result validate.Result) {
	if n := len(result.Errors); n > 0 {
		p.metrics.CounterAdd(metrics.ValidationIssuesTotal.Name, float64(n), "layer", layer)
	}
}

func (p *Parser) convertLegacy(data map[string]any) (map[string]any, error) {
	if !legacy.IsLegacy(data) {
		return data, nil
	}
	converted, err := legacy.Convert(data, p.logger)
	if err != nil {
		p.metrics.CounterInc(metrics.ParserLegacyConversions.Name, "status", "failed")
		return nil, err
	}
	p.metrics.CounterInc(metrics.ParserLegacyConversions.Name, "status", "converted")
	return normalizeMap(converted)
}

// normalizeMap forces a mapping down to plain decoded-JSON types so the
// schema validator never sees Go-typed values like []string.
func normalizeMap(m map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, errors.E(errors.KindParse, "parser.decode", "cannot normalize input mapping", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.E(errors.KindParse, "parser.decode", "cannot normalize input mapping", err)
	}
	return out, nil
}

// decode normalizes any accepted input form to a generic JSON mapping.
func (p *Parser) decode(input any) (map[string]any, error) {
	switch v := input.(type) {
	case nil:
		return nil, errors.ErrEmptyInput
	case map[string]any:
		if len(v) == 0 {
			return nil, errors.ErrEmptyInput
		}
		return normalizeMap(v)
	case json.RawMessage:
		return p.decodeBytes([]byte(v))
	case []byte:
		return p.decodeBytes(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, errors.ErrEmptyInput
		}
		if strings.HasPrefix(s, "{") {
			return p.decodeBytes([]byte(s))
		}
		// Non-JSON strings are treated as file paths.
		raw, err := os.ReadFile(v)
		if err != nil {
			return nil, errors.E(errors.KindParse, "parser.decode", "cannot read input file", err)
		}
		return p.decodeBytes(raw)
	default:
		return nil, errors.ErrUnsupportedInput
	}
}

func (p *Parser) decodeBytes(raw []byte) (map[string]any, error) {
	const op = "parser.decode"
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.ErrEmptyInput
	}

	raw, err := compress.DecompressAuto(raw)
	if err != nil {
		return nil, errors.E(errors.KindParse, op, "decompression failed", err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.E(errors.KindParse, op, "input is not a JSON object", err)
	}
	return data, nil
}

// evidenceItems extracts the typed evidence items from a normalized
// mapping. Malformed entries are skipped here; the schema layer already
// reports them.
func evidenceItems(data map[string]any) []xarf.Evidence {
	raw, _ := data["evidence"].([]any)
	if len(raw) == 0 {
		return nil
	}
	items := make([]xarf.Evidence, 0, len(raw))
	for _, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		var item xarf.Evidence
		item.ContentType, _ = m["content_type"].(string)
		item.Description, _ = m["description"].(string)
		item.Payload, _ = m["payload"].(string)
		item.Hash, _ = m["hash"].(string)
		items = append(items, item)
	}
	return items
}
