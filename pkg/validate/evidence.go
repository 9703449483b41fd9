package validate

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/xarfio/sdk/pkg/xarf"
)

var (
	mimeTypeRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9!#$&^_.+-]*/[a-zA-Z0-9][a-zA-Z0-9!#$&^_.+-]*$`)
	hashRe     = regexp.MustCompile(`^(md5|sha1|sha256|sha512):([a-fA-F0-9]+)$`)
)

// ValidateEvidence checks every evidence item: payload decodability, the
// per-item size ceiling, hash verification when a hash is declared, and
// content-type syntax. The aggregate decoded size is checked against the
// report-level ceiling after the per-item pass. A decode failure is a hard
// per-item error but does not abort the remaining items.
func ValidateEvidence(items []xarf.Evidence) Result {
	var result Result
	var total int64

	for i, item := range items {
		field := fmt.Sprintf("evidence.%d", i)

		if item.ContentType != "" && !mimeTypeRe.MatchString(item.ContentType) {
			result.AddErrorf(field+".content_type", CodeInvalidMIMEType,
				"content_type %q is not a valid type/subtype", item.ContentType)
		}

		payload, err := item.Decode()
		if err != nil {
			result.AddErrorf(field+".payload", CodePayloadDecode, "payload is not valid base64: %v", err)
			continue
		}

		if len(payload) > xarf.MaxEvidenceItemSize {
			result.AddErrorf(field+".payload", CodeEvidenceItemSize,
				"decoded payload is %d bytes, ceiling is %d", len(payload), xarf.MaxEvidenceItemSize)
		}
		total += int64(len(payload))

		if item.Hash != "" {
			verifyHash(field, item.Hash, payload, &result)
		}
	}

	if total > xarf.MaxEvidenceTotalSize {
		result.AddErrorf("evidence", CodeEvidenceTotalSize,
			"aggregate decoded evidence is %d bytes, ceiling is %d", total, xarf.MaxEvidenceTotalSize)
	}

	return result
}

// verifyHash checks a declared "algorithm:hexvalue" reference against the
// decoded payload. Mismatches get a distinct code so callers can filter
// cryptographic-integrity failures from structural ones.
func verifyHash(field, declared string, payload []byte, result *Result) {
	m := hashRe.FindStringSubmatch(declared)
	if m == nil {
		result.AddErrorf(field+".hash", CodeHashFormat,
			"hash %q is not in algorithm:hexvalue form (md5, sha1, sha256, sha512)", declared)
		return
	}
	algorithm, want := m[1], strings.ToLower(m[2])

	var got string
	switch algorithm {
	case "md5":
		sum := md5.Sum(payload)
		got = hex.EncodeToString(sum[:])
	case "sha1":
		sum := sha1.Sum(payload)
		got = hex.EncodeToString(sum[:])
	case "sha256":
		sum := sha256.Sum256(payload)
		got = hex.EncodeToString(sum[:])
	case "sha512":
		sum := sha512.Sum512(payload)
		got = hex.EncodeToString(sum[:])
	}

	if got != want {
		result.AddErrorf(field+".hash", CodeHashMismatch,
			"declared %s hash does not match decoded payload", algorithm)
	}
}

// ComputeHash returns the "algorithm:hexvalue" reference for a payload.
// Used by the generator to stamp evidence it constructs.
func ComputeHash(algorithm string, payload []byte) (string, error) {
	var sum []byte
	switch algorithm {
	case "md5":
		s := md5.Sum(payload)
		sum = s[:]
	case "sha1":
		s := sha1.Sum(payload)
		sum = s[:]
	case "sha256":
		s := sha256.Sum256(payload)
		sum = s[:]
	case "sha512":
		s := sha512.Sum512(payload)
		sum = s[:]
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algorithm)
	}
	return algorithm + ":" + hex.EncodeToString(sum), nil
}
