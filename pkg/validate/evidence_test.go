package validate

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/xarfio/sdk/pkg/xarf"
)

func encodedEvidence(content []byte, hashAlgo string) xarf.Evidence {
	e := xarf.Evidence{
		ContentType: "text/plain",
		Payload:     base64.StdEncoding.EncodeToString(content),
	}
	if hashAlgo != "" {
		e.Hash, _ = ComputeHash(hashAlgo, content)
	}
	return e
}

func TestValidateEvidenceAccepts(t *testing.T) {
	items := []xarf.Evidence{
		encodedEvidence([]byte("smtp transcript"), "sha256"),
		encodedEvidence([]byte("pcap fragment"), ""),
	}
	result := ValidateEvidence(items)
	if !result.Valid() {
		t.Fatalf("valid evidence rejected: %v", result.Errors)
	}
}

func TestValidateEvidenceItemSizeBoundary(t *testing.T) {
	t.Run("exactly at ceiling", func(t *testing.T) {
		items := []xarf.Evidence{encodedEvidence(make([]byte, xarf.MaxEvidenceItemSize), "")}
		result := ValidateEvidence(items)
		if !result.Valid() {
			t.Errorf("payload at exactly the ceiling rejected: %v", result.Errors)
		}
	})

	t.Run("one byte over", func(t *testing.T) {
		items := []xarf.Evidence{encodedEvidence(make([]byte, xarf.MaxEvidenceItemSize+1), "")}
		result := ValidateEvidence(items)
		if hasErrorCount(result, "evidence.0.payload", CodeEvidenceItemSize) != 1 {
			t.Errorf("expected item-size error, got: %v", result.Errors)
		}
	})
}

func TestValidateEvidenceAggregateBoundary(t *testing.T) {
	chunk := make([]byte, xarf.MaxEvidenceItemSize)

	t.Run("exactly at aggregate ceiling", func(t *testing.T) {
		items := []xarf.Evidence{
			encodedEvidence(chunk, ""),
			encodedEvidence(chunk, ""),
			encodedEvidence(chunk, ""),
		}
		result := ValidateEvidence(items)
		if !result.Valid() {
			t.Errorf("aggregate at exactly the ceiling rejected: %v", result.Errors)
		}
	})

	t.Run("over aggregate ceiling", func(t *testing.T) {
		items := []xarf.Evidence{
			encodedEvidence(chunk, ""),
			encodedEvidence(chunk, ""),
			encodedEvidence(chunk, ""),
			encodedEvidence([]byte("one more"), ""),
		}
		result := ValidateEvidence(items)
		if hasErrorCount(result, "evidence", CodeEvidenceTotalSize) != 1 {
			t.Errorf("expected aggregate-size error, got: %v", result.Errors)
		}
	})
}

func TestValidateEvidenceHash(t *testing.T) {
	content := []byte("the actual evidence")

	t.Run("matching hash", func(t *testing.T) {
		for _, algo := range []string{"md5", "sha1", "sha256", "sha512"} {
			result := ValidateEvidence([]xarf.Evidence{encodedEvidence(content, algo)})
			if !result.Valid() {
				t.Errorf("%s: matching hash rejected: %v", algo, result.Errors)
			}
		}
	})

	t.Run("mismatched hash gets its own code", func(t *testing.T) {
		e := encodedEvidence(content, "sha256")
		e.Hash = "sha256:" + strings.Repeat("ab", 32)
		result := ValidateEvidence([]xarf.Evidence{e})
		if hasErrorCount(result, "evidence.0.hash", CodeHashMismatch) != 1 {
			t.Errorf("expected %s, got: %v", CodeHashMismatch, result.Errors)
		}
	})

	t.Run("malformed hash reference", func(t *testing.T) {
		e := encodedEvidence(content, "")
		e.Hash = "crc32:12345678"
		result := ValidateEvidence([]xarf.Evidence{e})
		if hasErrorCount(result, "evidence.0.hash", CodeHashFormat) != 1 {
			t.Errorf("expected %s, got: %v", CodeHashFormat, result.Errors)
		}
	})
}

func TestValidateEvidenceDecodeFailure(t *testing.T) {
	items := []xarf.Evidence{
		{ContentType: "text/plain", Payload: "!!! not base64 !!!", Hash: "sha256:" + strings.Repeat("ab", 32)},
		encodedEvidence([]byte("fine"), "sha256"),
	}
	result := ValidateEvidence(items)

	if hasErrorCount(result, "evidence.0.payload", CodePayloadDecode) != 1 {
		t.Errorf("expected decode error for item 0, got: %v", result.Errors)
	}
	// Decode failure skips the item's hash check but not the other items.
	if hasErrorCount(result, "evidence.0.hash", CodeHashMismatch) != 0 {
		t.Errorf("hash check should be skipped on decode failure, got: %v", result.Errors)
	}
	for _, e := range result.Errors {
		if strings.HasPrefix(e.Field, "evidence.1") {
			t.Errorf("healthy item flagged: %v", e)
		}
	}
}

func TestValidateEvidenceContentType(t *testing.T) {
	e := encodedEvidence([]byte("x"), "")
	e.ContentType = "not a mime type"
	result := ValidateEvidence([]xarf.Evidence{e})
	if hasErrorCount(result, "evidence.0.content_type", CodeInvalidMIMEType) != 1 {
		t.Errorf("expected %s, got: %v", CodeInvalidMIMEType, result.Errors)
	}
}

func TestComputeHash(t *testing.T) {
	got, err := ComputeHash("sha256", []byte("hello"))
	if err != nil {
		t.Fatalf("ComputeHash() error: %v", err)
	}
	want := "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("ComputeHash() = %q, want %q", got, want)
	}

	if _, err := ComputeHash("crc32", []byte("hello")); err == nil {
		t.Error("ComputeHash() with unsupported algorithm should fail")
	}
}
