package domain

import (
	"fmt"
	"strings"
)

// TokenType identifies the kind of decoy a canary represents.
type TokenType string

const (
	TokenTypeDNS          TokenType = "dns"
	TokenTypeHTTP         TokenType = "http"
	TokenTypeAWSKey       TokenType = "aws-key"
	TokenTypeSQL          TokenType = "sql"
	TokenTypeEmail        TokenType = "email"
	TokenTypeAPIKey       TokenType = "api-key"
	TokenTypeQRCode       TokenType = "qr-code"
	TokenTypeDocumentDOCX TokenType = "document-docx"
	TokenTypeDocumentXLSX TokenType = "document-xlsx"
	TokenTypeDocumentPPTX TokenType = "document-pptx"
	TokenTypeDocumentPDF  TokenType = "document-pdf"
)

// documentTypePrefix precedes the subtype in document token types.
const documentTypePrefix = "document-"

// DefaultDocumentType is the document subtype used when none is given.
const DefaultDocumentType = "docx"

// AllTokenTypes returns every supported token type.
func AllTokenTypes() []TokenType {
	return []TokenType{
		TokenTypeDNS,
		TokenTypeHTTP,
		TokenTypeAWSKey,
		TokenTypeSQL,
		TokenTypeEmail,
		TokenTypeAPIKey,
		TokenTypeQRCode,
		TokenTypeDocumentDOCX,
		TokenTypeDocumentXLSX,
		TokenTypeDocumentPPTX,
		TokenTypeDocumentPDF,
	}
}

// ParseTokenType converts s into a TokenType, failing with ErrInvalidTokenType.
func ParseTokenType(s string) (TokenType, error) {
	t := TokenType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// DocumentTokenType returns the document token type for a subtype such as "pdf".
func DocumentTokenType(subtype string) (TokenType, error) {
	t := TokenType(documentTypePrefix + strings.ToLower(subtype))
	if !t.IsDocument() || t.Validate() != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDocumentType, subtype)
	}
	return t, nil
}

// Validate checks if the token type is supported.
func (t TokenType) Validate() error {
	switch t {
	case TokenTypeDNS, TokenTypeHTTP, TokenTypeAWSKey, TokenTypeSQL, TokenTypeEmail,
		TokenTypeAPIKey, TokenTypeQRCode, TokenTypeDocumentDOCX, TokenTypeDocumentXLSX,
		TokenTypeDocumentPPTX, TokenTypeDocumentPDF:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTokenType, string(t))
	}
}

// Prefix returns the token id prefix for the type. All document types share "doc".
func (t TokenType) Prefix() string {
	switch t {
	case TokenTypeAWSKey:
		return "aws"
	case TokenTypeAPIKey:
		return "api"
	case TokenTypeQRCode:
		return "qr"
	}
	if t.IsDocument() {
		return "doc"
	}
	return string(t)
}

// IsDocument reports whether the type is one of the document-* types.
func (t TokenType) IsDocument() bool {
	return strings.HasPrefix(string(t), documentTypePrefix)
}

// DocumentSubtype returns "docx", "xlsx", "pptx" or "pdf" for document types and an
// empty string otherwise.
func (t TokenType) DocumentSubtype() string {
	if !t.IsDocument() {
		return ""
	}
	return strings.TrimPrefix(string(t), documentTypePrefix)
}

// String returns the string representation of the token type.
func (t TokenType) String() string {
	return string(t)
}
