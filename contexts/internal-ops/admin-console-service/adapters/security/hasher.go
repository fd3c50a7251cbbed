package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	iterations = 210_000
	keyLength  = 32
)

// PBKDF2Hasher derives member password hashes for demo data.
type PBKDF2Hasher struct{}

func (PBKDF2Hasher) Salt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(buf), nil
}

func (PBKDF2Hasher) Hash(secret, salt string) string {
	key := pbkdf2.Key([]byte(secret), []byte(salt), iterations, keyLength, sha256.New)
	return hex.EncodeToString(key)
}
