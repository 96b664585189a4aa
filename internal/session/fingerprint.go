package session

import (
	"crypto/sha256"

	"github.com/mr-tron/base58"
)

// Fingerprint returns a short, log safe identifier for a token
// (Base58-encoded SHA256, truncated to 12 characters).
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(token))
	fp := base58.Encode(hash[:])
	if len(fp) > 12 {
		fp = fp[:12]
	}
	return fp
}
