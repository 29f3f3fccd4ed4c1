package service

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

const (
	// CanaryDomain is the reserved domain every decoy hostname, URL and address uses.
	CanaryDomain = "canarytokens.local"

	// tokenIDBytes is the entropy of a token id (128 bits, 32 hex characters).
	tokenIDBytes = 16
)

func randomBytes(random io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(random, b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}

// randomHex returns n random bytes as 2n lowercase hex characters.
func randomHex(random io.Reader, n int) (string, error) {
	b, err := randomBytes(random, n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// randomURLSafe returns n random bytes as unpadded base64url.
func randomURLSafe(random io.Reader, n int) (string, error) {
	b, err := randomBytes(random, n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewTokenID returns "<prefix>_<32 lowercase hex>" for the token type.
func NewTokenID(random io.Reader, tokenType domain.TokenType) (string, error) {
	if err := tokenType.Validate(); err != nil {
		return "", err
	}
	suffix, err := randomHex(random, tokenIDBytes)
	if err != nil {
		return "", err
	}
	return tokenType.Prefix() + "_" + suffix, nil
}
