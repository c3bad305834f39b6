package captable

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// The digest is intentionally deterministic: the same password and secret
// always yield the same hex string, so it can be used both to store and to
// compare credentials. The secret is the process-wide password secret,
// independent from the token signing key.
const (
	digestIterations = 4096
	digestKeyLength  = 64
)

// HashPassword derives a keyed one-way digest of password
func HashPassword(password, secret string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	key := pbkdf2.Key([]byte(password), []byte(secret), digestIterations, digestKeyLength, sha512.New)
	return hex.EncodeToString(key), nil
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the stored digest
func ComparePasswordAndHash(password, hash, secret string) error {
	digest, err := HashPassword(password, secret)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) != 1 {
		return ErrMismatchedHashAndPassword
	}
	return nil
}
