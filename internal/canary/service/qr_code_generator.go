package service

import (
	"fmt"
	"io"

	"github.com/allisson/canarydrop/internal/canary/domain"
	apperrors "github.com/allisson/canarydrop/internal/errors"
	"github.com/allisson/canarydrop/internal/validation"
)

const qrCodeNote = "Use online QR generator with this URL"

type qrCodeGenerator struct{}

// NewQRCodeGenerator creates a generator for URLs meant to be printed as QR codes.
// A caller supplied URL is kept as is; otherwise a tracking URL is derived from the
// token id.
func NewQRCodeGenerator() Generator {
	return &qrCodeGenerator{}
}

func (g *qrCodeGenerator) Generate(_ io.Reader, req GenerateRequest) (domain.Metadata, error) {
	url := req.URL
	if url == "" {
		url = "https://" + CanaryDomain + "/qr/" + req.TokenID
	} else if !validation.IsHTTPURL(url) {
		return nil, fmt.Errorf("%w: qr-code url must be an absolute http or https URL", apperrors.ErrInvalidInput)
	}

	return domain.Metadata{
		domain.MetaURL:    url,
		domain.MetaFormat: "url",
		domain.MetaNote:   qrCodeNote,
	}, nil
}
