package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ParseToken strips the expected prefix from a raw bearer value.
// Returns false when the prefix is missing or nothing follows it.
func ParseToken(raw, prefix string) (string, bool) {
	if !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	secret := strings.TrimPrefix(raw, prefix)
	if secret == "" {
		return "", false
	}
	return secret, true
}

// HMAC256Hex computes the hex HMAC-SHA256 of secret under pepper. Stored as
// the lookup column so raw API keys never hit the database.
func HMAC256Hex(pepper, secret string) string {
	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}
