package resolve

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPIN returns the lowercase hex SHA-256 digest of pin, the format stored
// alongside protected link records.
func HashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// verifyPIN reports whether pin matches the stored hex digest. The comparison
// runs in constant time over the digest bytes so response timing leaks nothing
// about how close a guess was.
func verifyPIN(pin, storedHash string) bool {
	stored, err := hex.DecodeString(storedHash)
	if err != nil || len(stored) != sha256.Size {
		return false
	}
	sum := sha256.Sum256([]byte(pin))
	return subtle.ConstantTimeCompare(sum[:], stored) == 1
}
