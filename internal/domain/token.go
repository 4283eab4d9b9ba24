package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

const tokenLength int = 32

// AccessToken lets a guest manage a single booking. Only the hash is persisted.
type AccessToken struct {
	Plaintext string
	Hash      []byte
}

func GenerateAccessToken() (*AccessToken, error) {
	randomBytes := make([]byte, tokenLength)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	plaintext := base64.RawURLEncoding.EncodeToString(randomBytes)

	return &AccessToken{
		Plaintext: plaintext,
		Hash:      HashToken(plaintext),
	}, nil
}

func HashToken(plaintext string) []byte {
	hash := sha256.Sum256([]byte(plaintext))
	return hash[:]
}

func tokenMatches(hash []byte, plaintext string) bool {
	if plaintext == "" || len(hash) == 0 {
		return false
	}

	return subtle.ConstantTimeCompare(hash, HashToken(plaintext)) == 1
}
