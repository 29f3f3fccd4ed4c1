package service

import (
	"io"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

type dnsGenerator struct{}

// NewDNSGenerator creates a generator for hostnames under CanaryDomain. Any resolution
// of the hostname is the signal.
func NewDNSGenerator() Generator {
	return &dnsGenerator{}
}

// Generate returns the hostname "<tokenId>.canarytokens.local" with an A record type.
func (g *dnsGenerator) Generate(_ io.Reader, req GenerateRequest) (domain.Metadata, error) {
	return domain.Metadata{
		domain.MetaHostname:   req.TokenID + "." + CanaryDomain,
		domain.MetaRecordType: "A",
	}, nil
}
