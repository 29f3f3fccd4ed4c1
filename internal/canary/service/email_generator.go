package service

import (
	"io"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

type emailGenerator struct{}

// NewEmailGenerator creates a generator for decoy mailbox addresses.
func NewEmailGenerator() Generator {
	return &emailGenerator{}
}

func (g *emailGenerator) Generate(_ io.Reader, req GenerateRequest) (domain.Metadata, error) {
	return domain.Metadata{
		domain.MetaEmail: req.TokenID + "@" + CanaryDomain,
	}, nil
}
