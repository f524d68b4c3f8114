package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Digests are stored as "hexhash.hexsalt": a 64-byte scrypt derivation over
// password+salt followed by the 16-byte random salt.
const (
	digestSeparator = "."
	saltLength      = 16
	keyLength       = 64

	// scrypt cost parameters (interactive login profile).
	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

var (
	// ErrHashing wraps an internal failure while deriving a digest.
	ErrHashing = errors.New("password hashing failed")

	// ErrInvalidDigestFormat reports a stored value without the expected
	// hash.salt structure.
	ErrInvalidDigestFormat = errors.New("invalid stored password format")
)

// HashPassword derives a salted scrypt digest for storage.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}

	return hex.EncodeToString(derived) + digestSeparator + hex.EncodeToString(salt), nil
}

// VerifyPassword recomputes the digest for the supplied password using the
// stored salt and compares in constant time.
func VerifyPassword(supplied, stored string) (bool, error) {
	parts := strings.Split(stored, digestSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false, ErrInvalidDigestFormat
	}

	storedHash, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, ErrInvalidDigestFormat
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, ErrInvalidDigestFormat
	}

	derived, err := scrypt.Key([]byte(supplied), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrHashing, err)
	}

	return subtle.ConstantTimeCompare(storedHash, derived) == 1, nil
}

// IsHashedDigest reports whether a stored credential carries the hash.salt
// structure. Seeded bootstrap accounts are the only rows without it.
func IsHashedDigest(stored string) bool {
	return strings.Contains(stored, digestSeparator)
}
