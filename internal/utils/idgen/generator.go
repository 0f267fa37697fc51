// Package idgen generates prefixed identifiers for API-facing records.
package idgen

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID returns "<prefix>_<suffix>" where suffix is length
// characters drawn from [0-9a-z] using crypto/rand.
func GenerateSecureID(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("idgen: read random bytes: %w", err)
	}

	suffix := make([]byte, length)
	for i, b := range buf {
		suffix[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return prefix + "_" + string(suffix), nil
}

// ValidateIDFormat reports whether id is "<expectedPrefix>_<suffix>"
// with a non-empty suffix over [0-9a-z].
func ValidateIDFormat(id string, expectedPrefix string) bool {
	marker := expectedPrefix + "_"
	if len(id) <= len(marker) {
		return false
	}
	if id[:len(marker)] != marker {
		return false
	}
	for _, c := range id[len(marker):] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// HashKey256 returns the hex HMAC-SHA256 of key under secret. Used to
// derive stable lookup keys without storing the raw input.
func HashKey256(key string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}
