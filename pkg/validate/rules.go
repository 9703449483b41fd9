package validate

import (
	"net/url"
	"strings"

	xarferrors "github.com/xarfio/sdk/pkg/errors"
	"github.com/xarfio/sdk/pkg/taxonomy"
)

// BusinessRules applies category-specific semantic rules to a normalized
// report. Rules are dispatched through a table keyed by category; valid
// categories without an implemented rule set pass with a warning so that
// categories not yet fully specified remain parseable.
type BusinessRules struct {
	tax   *taxonomy.Taxonomy
	rules map[string]func(map[string]any, *Result)
}

// NewBusinessRules builds the rule engine for a taxonomy.
func NewBusinessRules(tax *taxonomy.Taxonomy) (*BusinessRules, error) {
	if tax == nil {
		return nil, xarferrors.ErrTaxonomyNotLoaded
	}
	b := &BusinessRules{tax: tax}
	b.rules = map[string]func(map[string]any, *Result){
		"messaging":  b.validateMessaging,
		"connection": b.validateConnection,
		"content":    b.validateContent,
	}
	return b, nil
}

// Validate runs the category's rule set against normalized data.
// Errors accumulate; the engine does not stop at the first violation.
func (b *BusinessRules) Validate(data map[string]any) Result {
	var result Result

	category, _ := data["category"].(string)
	if category == "" || !b.tax.IsValidCategory(category) {
		// Membership is the schema validator's concern.
		return result
	}

	for _, field := range b.tax.RequiredFields(category) {
		if !hasNonEmpty(data, field) {
			result.AddErrorf(field, CodeRequiredField,
				"%s is required for %s reports", field, category)
		}
	}

	rule, ok := b.rules[category]
	if !ok {
		result.AddWarning("category", CodeRulesUnavailable,
			"no business rules implemented for category "+category)
		return result
	}
	rule(data, &result)
	return result
}

func (b *BusinessRules) validateMessaging(data map[string]any, result *Result) {
	protocol, _ := data["protocol"].(string)
	if strings.EqualFold(protocol, "smtp") && !hasNonEmpty(data, "smtp_from") {
		result.AddError("smtp_from", CodeRequiredField, "smtp_from is required when protocol is smtp")
	}

	typ, _ := data["type"].(string)
	if (typ == "spam" || typ == "phishing") && !hasNonEmpty(data, "subject") {
		result.AddErrorf("subject", CodeRequiredField, "subject is required for messaging %s reports", typ)
	}
}

func (b *BusinessRules) validateConnection(data map[string]any, result *Result) {
	checkPort(data, "destination_port", result)
	checkPort(data, "source_port", result)
}

func (b *BusinessRules) validateContent(data map[string]any, result *Result) {
	raw, _ := data["url"].(string)
	if raw == "" {
		// Presence is enforced through the taxonomy's required fields.
		return
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		result.AddErrorf("url", CodeInvalidURL, "not a well-formed URL with scheme and host: %q", raw)
	}
}

// hasNonEmpty reports whether field is present and not an empty string.
func hasNonEmpty(data map[string]any, field string) bool {
	v, ok := data[field]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// checkPort validates an optional port field against [1, 65535].
func checkPort(data map[string]any, field string, result *Result) {
	v, ok := data[field]
	if !ok || v == nil {
		return
	}
	n, ok := v.(float64) // JSON numbers decode to float64
	if !ok {
		result.AddError(field, CodeInvalidType, field+" must be a number")
		return
	}
	if n < 1 || n > 65535 || n != float64(int64(n)) {
		result.AddErrorf(field, CodeValueOutOfRange, "%s must be an integer in [1, 65535], got %v", field, v)
	}
}
