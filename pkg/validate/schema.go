package validate

import (
	_ "embed"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	xarferrors "github.com/xarfio/sdk/pkg/errors"
	"github.com/xarfio/sdk/pkg/taxonomy"
)

//go:embed schema/xarf-core.json
var coreSchemaJSON string

const coreSchemaURL = "https://xarf.io/schemas/v4/xarf-core.json"

var (
	compileOnce sync.Once
	coreSchema  *jsonschema.Schema
	compileErr  error
)

func compiledCoreSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(coreSchemaURL, strings.NewReader(coreSchemaJSON)); err != nil {
			compileErr = xarferrors.E(xarferrors.KindSchema, "validate.compiledCoreSchema", "core schema load failed", err)
			return
		}
		coreSchema, compileErr = c.Compile(coreSchemaURL)
		if compileErr != nil {
			compileErr = xarferrors.E(xarferrors.KindSchema, "validate.compiledCoreSchema", "core schema compile failed", compileErr)
		}
	})
	return coreSchema, compileErr
}

// SchemaValidator validates the normalized (v4) wire shape: required
// fields, primitive types, enumeration membership, and the UUID and
// timestamp syntactic formats. It never consults legacy variants.
type SchemaValidator struct {
	schema *jsonschema.Schema
	tax    *taxonomy.Taxonomy
}

// NewSchemaValidator compiles the embedded core schema (once per process)
// and binds the validator to a taxonomy.
func NewSchemaValidator(tax *taxonomy.Taxonomy) (*SchemaValidator, error) {
	schema, err := compiledCoreSchema()
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, xarferrors.ErrTaxonomyNotLoaded
	}
	return &SchemaValidator{schema: schema, tax: tax}, nil
}

// Validate checks data against the core schema plus the format and
// taxonomy constraints JSON Schema cannot express. It accumulates one
// error per violated constraint and never short-circuits.
func (v *SchemaValidator) Validate(data map[string]any) Result {
	var result Result

	if err := v.schema.Validate(any(data)); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			flattenSchemaError(ve, &result)
		} else {
			result.AddError("$root", CodeSchemaViolation, err.Error())
		}
	}

	v.checkReportID(data, &result)
	v.checkTimestamp(data, &result)
	v.checkCategoryAndType(data, &result)
	v.checkEvidenceSource(data, &result)
	v.checkUnknownFields(data, &result)

	result.Dedupe()
	return result
}

func (v *SchemaValidator) checkReportID(data map[string]any, result *Result) {
	id, ok := data["report_id"].(string)
	if !ok || id == "" {
		return // presence and type covered by the schema
	}
	if _, err := uuid.Parse(id); err != nil {
		result.AddErrorf("report_id", CodeInvalidUUID, "not a valid UUID: %q", id)
	}
}

func (v *SchemaValidator) checkTimestamp(data map[string]any, result *Result) {
	ts, ok := data["timestamp"].(string)
	if !ok || ts == "" {
		return
	}
	if _, err := time.Parse(time.RFC3339, ts); err == nil {
		return
	}
	// Distinguish a syntactically fine local timestamp from garbage.
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999"} {
		if _, err := time.Parse(layout, ts); err == nil {
			result.AddErrorf("timestamp", CodeMissingTimezone, "timestamp %q carries no timezone information", ts)
			return
		}
	}
	result.AddErrorf("timestamp", CodeInvalidTimestamp, "not an ISO-8601 timestamp: %q", ts)
}

func (v *SchemaValidator) checkCategoryAndType(data map[string]any, result *Result) {
	category, _ := data["category"].(string)
	if category == "" {
		return
	}
	if !v.tax.IsValidCategory(category) {
		result.AddErrorf("category", CodeInvalidEnum,
			"invalid category %q, valid: %s", category, strings.Join(v.tax.Categories(), ", "))
		return
	}
	typ, _ := data["type"].(string)
	if typ == "" {
		return
	}
	if !v.tax.IsValidType(category, typ) {
		result.AddErrorf("type", CodeInvalidEnum,
			"invalid type %q for category %q, valid: %s", typ, category, strings.Join(v.tax.TypesFor(category), ", "))
	}
}

func (v *SchemaValidator) checkEvidenceSource(data map[string]any, result *Result) {
	source, _ := data["evidence_source"].(string)
	if source == "" {
		return
	}
	// Unknown sources are tolerated for forward compatibility.
	if !v.tax.IsValidEvidenceSource(source) {
		result.AddWarning("evidence_source", CodeUnknownSource,
			"unknown evidence_source "+source+", known: "+strings.Join(v.tax.EvidenceSources(), ", "))
	}
}

func (v *SchemaValidator) checkUnknownFields(data map[string]any, result *Result) {
	var unknown []string
	for field := range data {
		if !knownTopLevelFields[field] {
			unknown = append(unknown, field)
		}
	}
	sort.Strings(unknown)
	for _, field := range unknown {
		result.AddWarning(field, CodeUnknownField, "field "+field+" is not defined in the XARF schema")
	}
}

// =============================================================================
// JSON Schema error flattening
// =============================================================================

var quotedNameRe = regexp.MustCompile(`'([^']+)'`)

// flattenSchemaError walks the cause tree and records one Result error per
// leaf violation, with the dotted instance path. "required" violations are
// split so every missing property gets its own entry.
func flattenSchemaError(err *jsonschema.ValidationError, result *Result) {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			flattenSchemaError(cause, result)
		}
		return
	}

	field := pointerToDotted(err.InstanceLocation)

	if strings.HasSuffix(err.KeywordLocation, "/required") {
		names := quotedNameRe.FindAllStringSubmatch(err.Message, -1)
		if len(names) > 0 {
			for _, m := range names {
				path := m[1]
				if field != "$root" {
					path = field + "." + m[1]
				}
				result.AddError(path, CodeRequiredField, "missing required field: "+path)
			}
			return
		}
		result.AddError(field, CodeRequiredField, err.Message)
		return
	}

	code := CodeSchemaViolation
	switch {
	case strings.HasSuffix(err.KeywordLocation, "/type"):
		code = CodeInvalidType
	case strings.HasSuffix(err.KeywordLocation, "/enum"):
		code = CodeInvalidEnum
	}
	result.AddError(field, code, err.Message)
}

// pointerToDotted converts a JSON pointer ("/reporter/org") to the dotted
// form used in validation errors ("reporter.org").
func pointerToDotted(pointer string) string {
	if pointer == "" || pointer == "/" {
		return "$root"
	}
	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return strings.Join(parts, ".")
}

// knownTopLevelFields is the union of core and category-specific wire
// fields; anything outside it is reported as an unknown-field warning.
var knownTopLevelFields = map[string]bool{
	"xarf_version": true, "report_id": true, "timestamp": true,
	"reporter": true, "source_identifier": true, "category": true,
	"type": true, "evidence_source": true, "evidence": true, "tags": true,
	"description": true, "severity": true, "confidence": true,
	"legacy_version": true, "_internal": true,

	"protocol": true, "attack_type": true,

	"smtp_from": true, "smtp_to": true, "subject": true, "message_id": true,
	"sender_display_name": true, "target_victim": true, "message_content": true,

	"destination_ip": true, "destination_port": true, "source_port": true,
	"duration_minutes": true, "packet_count": true, "byte_count": true,
	"attempt_count": true, "usernames_attempted": true,

	"url": true, "content_type": true, "affected_pages": true,
	"cms_platform": true, "vulnerability_exploited": true,

	"domain_name": true, "dns_record_type": true, "malicious_records": true,
	"asn": true, "prefix": true, "legitimate_origin": true,
	"certificate_serial": true, "certificate_issuer": true,

	"work_title": true, "work_type": true, "rights_holder": true,
	"infringing_url": true, "original_url": true, "dmca_notice_id": true,

	"vulnerability_type": true, "cve_id": true, "cvss_score": true,
	"affected_service": true, "affected_version": true, "remediation": true,

	"blocklist_name": true, "blocklist_url": true, "listing_reason": true,
	"first_seen": true, "last_seen": true, "reputation_score": true,
}
