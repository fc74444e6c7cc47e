// internal/password/password.go
//
// Salted PBKDF2 password hashing.
//
// Stored format: base64(salt || derivedKey) where
//   - salt is 16 random bytes, fresh on every call,
//   - derivedKey is 32 bytes of PBKDF2-HMAC-SHA256 with 10,000 iterations.
//
// Two hashes of the same password never compare equal; use Verify.

package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 16
	KeySize    = 32
	Iterations = 10000
)

// Hash returns base64(salt || key) for plain.
func Hash(plain string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	key := derive(plain, salt)
	out := make([]byte, 0, SaltSize+KeySize)
	out = append(out, salt...)
	out = append(out, key...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Verify reports whether plain matches stored. A stored value that is not
// valid base64 or has the wrong length never matches.
func Verify(plain, stored string) bool {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil || len(raw) != SaltSize+KeySize {
		return false
	}
	salt, want := raw[:SaltSize], raw[SaltSize:]
	got := derive(plain, salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func derive(plain string, salt []byte) []byte {
	return pbkdf2.Key([]byte(plain), salt, Iterations, KeySize, sha256.New)
}
