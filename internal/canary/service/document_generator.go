package service

import (
	"io"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

type documentGenerator struct {
	subtype string
}

// NewDocumentGenerator creates a generator for tracking-pixel callbacks embedded in
// documents of the given subtype (docx, xlsx, pptx or pdf).
func NewDocumentGenerator(subtype string) Generator {
	return &documentGenerator{subtype: subtype}
}

func (g *documentGenerator) Generate(_ io.Reader, req GenerateRequest) (domain.Metadata, error) {
	return domain.Metadata{
		domain.MetaDocumentType:  g.subtype,
		domain.MetaCallbackURL:   "https://" + CanaryDomain + "/doc/" + req.TokenID + "/track.gif",
		domain.MetaTrackingPixel: true,
	}, nil
}
