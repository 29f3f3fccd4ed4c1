// Package service generates canary tokens: a unique token id plus realistic, type
// specific decoy material (hostnames, URLs, fake credentials, connection strings).
// Generators read only from the random source they are given and perform no other I/O.
package service

import (
	"io"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

// GenerateRequest carries the inputs shared by every generator.
type GenerateRequest struct {
	// TokenID is the already minted id the decoy material is derived from.
	TokenID string
	// Name is the operator label; the sql generator derives the database name from it.
	Name string
	// URL is an optional caller supplied destination (qr-code only).
	URL string
}

// Generator produces the metadata of one token type.
type Generator interface {
	Generate(random io.Reader, req GenerateRequest) (domain.Metadata, error)
}

// MintInput describes the canary to mint.
type MintInput struct {
	TokenType domain.TokenType
	Name      string
	URL       string
}

// TokenFactory mints unsaved canaries with a fresh token id and decoy material.
type TokenFactory interface {
	Mint(input MintInput) (*domain.Canary, error)
}
