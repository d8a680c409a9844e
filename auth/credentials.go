package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"gallery/errvalues"

	"golang.org/x/crypto/pbkdf2"
)

// Stored credential layout, base64 encoded:
// tag "v01" (3 bytes) | raw salt (16) | iterations big-endian (3) | derived key (32).
// The iteration count travels inside the hash so verification never depends
// on a caller-supplied parameter.
const (
	credentialTag     = "v01"
	saltSize          = 16
	iterSize          = 3
	keySize           = 32
	encodedSize       = len(credentialTag) + saltSize + iterSize + keySize
	DefaultIterations = 10000
)

// HashPassword derives a PBKDF2-SHA256 key from password under a fresh
// random salt and encodes the self-describing composite
func HashPassword(password string, iterations int) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)

	composite := make([]byte, 0, encodedSize)
	composite = append(composite, credentialTag...)
	composite = append(composite, salt...)
	composite = append(composite, byte(iterations>>16), byte(iterations>>8), byte(iterations))
	composite = append(composite, key...)
	return base64.StdEncoding.EncodeToString(composite), nil
}

// VerifyPassword re-derives a key from plain using the salt and iteration
// count embedded in encoded and compares in constant time. A wrong password
// returns (false, nil); only a malformed stored hash is an error.
func VerifyPassword(plain, encoded string) (bool, error) {
	composite, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false, fmt.Errorf("%w: %v", errvalues.ErrFormat, err)
	}
	if len(composite) != encodedSize || string(composite[:len(credentialTag)]) != credentialTag {
		return false, errvalues.ErrFormat
	}
	salt := composite[3 : 3+saltSize]
	iterations := int(composite[19])<<16 | int(composite[20])<<8 | int(composite[21])
	stored := composite[22:]

	key := pbkdf2.Key([]byte(plain), salt, iterations, keySize, sha256.New)
	return subtle.ConstantTimeCompare(key, stored) == 1, nil
}
