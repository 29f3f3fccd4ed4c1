package service

import (
	"io"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

type httpGenerator struct{}

// NewHTTPGenerator creates a generator for tracking URLs.
func NewHTTPGenerator() Generator {
	return &httpGenerator{}
}

func (g *httpGenerator) Generate(_ io.Reader, req GenerateRequest) (domain.Metadata, error) {
	return domain.Metadata{
		domain.MetaURL:    "https://" + CanaryDomain + "/" + req.TokenID,
		domain.MetaMethod: "GET",
	}, nil
}
