package service

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

type tokenFactory struct {
	random io.Reader
}

// NewTokenFactory creates a TokenFactory reading entropy from random. A nil reader
// selects crypto/rand.
func NewTokenFactory(random io.Reader) TokenFactory {
	if random == nil {
		random = rand.Reader
	}
	return &tokenFactory{random: random}
}

// Mint resolves the generator for the token type, draws a new token id and returns an
// unsaved canary. CreatedAt, the memo and the alert fields are left to the caller.
func (f *tokenFactory) Mint(input MintInput) (*domain.Canary, error) {
	generator, err := NewGenerator(input.TokenType)
	if err != nil {
		return nil, err
	}

	tokenID, err := NewTokenID(f.random, input.TokenType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	metadata, err := generator.Generate(f.random, GenerateRequest{
		TokenID: tokenID,
		Name:    input.Name,
		URL:     input.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s token: %w", input.TokenType, err)
	}

	return &domain.Canary{
		TokenID:   tokenID,
		TokenType: input.TokenType,
		Name:      input.Name,
		Metadata:  metadata,
	}, nil
}
