package generator

import (
	"encoding/base64"

	"github.com/xarfio/sdk/pkg/errors"
	"github.com/xarfio/sdk/pkg/validate"
	"github.com/xarfio/sdk/pkg/xarf"
)

// NewEvidence builds an evidence item from raw content: the payload is
// base64-encoded and stamped with a sha256 hash reference. Content above
// the per-item decoded-size ceiling is rejected up front.
func NewEvidence(contentType, description string, content []byte) (xarf.Evidence, error) {
	const op = "generator.NewEvidence"

	if len(content) > xarf.MaxEvidenceItemSize {
		return xarf.Evidence{}, errors.E(errors.KindGeneration, op, "evidence content exceeds per-item size ceiling")
	}

	hash, err := validate.ComputeHash("sha256", content)
	if err != nil {
		return xarf.Evidence{}, errors.E(errors.KindGeneration, op, "cannot hash evidence content", err)
	}

	return xarf.Evidence{
		ContentType: contentType,
		Description: description,
		Payload:     base64.StdEncoding.EncodeToString(content),
		Hash:        hash,
	}, nil
}
