package service

import (
	"github.com/allisson/canarydrop/internal/canary/domain"
)

// NewGenerator creates the generator for the specified token type.
func NewGenerator(tokenType domain.TokenType) (Generator, error) {
	switch tokenType {
	case domain.TokenTypeDNS:
		return NewDNSGenerator(), nil
	case domain.TokenTypeHTTP:
		return NewHTTPGenerator(), nil
	case domain.TokenTypeAWSKey:
		return NewAWSKeyGenerator(), nil
	case domain.TokenTypeSQL:
		return NewSQLGenerator(), nil
	case domain.TokenTypeEmail:
		return NewEmailGenerator(), nil
	case domain.TokenTypeAPIKey:
		return NewAPIKeyGenerator(), nil
	case domain.TokenTypeQRCode:
		return NewQRCodeGenerator(), nil
	case domain.TokenTypeDocumentDOCX, domain.TokenTypeDocumentXLSX,
		domain.TokenTypeDocumentPPTX, domain.TokenTypeDocumentPDF:
		return NewDocumentGenerator(tokenType.DocumentSubtype()), nil
	default:
		return nil, tokenType.Validate()
	}
}
