package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateID returns a random URL-safe identifier of exactly length
// characters (alphabet A-Za-z0-9_-)
func GenerateID(length int) string {
	buf := make([]byte, length+2)
	_, err := rand.Read(buf)
	if err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:length]
}
