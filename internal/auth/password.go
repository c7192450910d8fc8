package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// legacyPrefix marks hashes produced by the retired salted-SHA256 scheme.
// Stored form: sha256$<salt>$<hex digest of password+salt>.
const legacyPrefix = "sha256$"

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// Cost and salt are embedded in the returned string.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plaintext password against a stored hash. Both
// bcrypt and the legacy salted-SHA256 format are accepted; legacy reports
// which scheme matched so callers can re-hash after a successful legacy
// login. Malformed input never errors, it verifies as false.
func VerifyPassword(password, stored string) (ok bool, legacy bool) {
	if strings.HasPrefix(stored, legacyPrefix) {
		return verifyLegacy(password, stored), true
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, false
}

// LegacyHash computes the retired scheme's hash string. Kept for migration
// tooling and tests; new hashes must come from HashPassword.
func LegacyHash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return legacyPrefix + salt + "$" + hex.EncodeToString(sum[:])
}

func verifyLegacy(password, stored string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 || parts[1] == "" {
		return false
	}
	sum := sha256.Sum256([]byte(password + parts[1]))
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) != sha256.Size {
		return false
	}
	return subtle.ConstantTimeCompare(sum[:], want) == 1
}
