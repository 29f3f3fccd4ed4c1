package service

import (
	"io"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

const (
	apiKeyPrefix = "sk_"
	apiKeyBytes  = 32
)

type apiKeyGenerator struct{}

// NewAPIKeyGenerator creates a generator for secret API keys in the common "sk_" style.
func NewAPIKeyGenerator() Generator {
	return &apiKeyGenerator{}
}

func (g *apiKeyGenerator) Generate(random io.Reader, _ GenerateRequest) (domain.Metadata, error) {
	key, err := randomURLSafe(random, apiKeyBytes)
	if err != nil {
		return nil, err
	}
	return domain.Metadata{
		domain.MetaAPIKey:  apiKeyPrefix + key,
		domain.MetaKeyType: "secret_key",
	}, nil
}
