package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const base62Chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateKey returns prefix followed by n random base62 characters.
// 22 characters already carry more than 128 bits of entropy; invitation
// tokens and API keys both use 48.
func GenerateKey(prefix string, n int) (string, error) {
	var sb strings.Builder
	sb.WriteString(prefix)

	for range n {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(base62Chars))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(base62Chars[num.Int64()])
	}

	return sb.String(), nil
}

// NewInviteToken generates a bearer token for an invitation link.
func NewInviteToken() (string, error) {
	return GenerateKey("", 48)
}
