package domain

import (
	"github.com/allisson/canarydrop/internal/errors"
)

var (
	// ErrInvalidTokenType indicates a token type outside the supported set.
	ErrInvalidTokenType = errors.Wrap(errors.ErrInvalidInput, "invalid token type")

	// ErrCanaryAlreadyExists indicates a canary with the same token id is already registered.
	ErrCanaryAlreadyExists = errors.Wrap(errors.ErrConflict, "canary already exists")

	// ErrCanaryNotFound indicates no canary is registered under the token id.
	ErrCanaryNotFound = errors.Wrap(errors.ErrNotFound, "canary not found")

	// ErrMalformedMetadata indicates metadata that is not a JSON object of scalar values.
	ErrMalformedMetadata = errors.Wrap(errors.ErrInvalidInput, "malformed metadata")

	// ErrInvalidAlertMethod indicates an alert method outside console, email and webhook.
	ErrInvalidAlertMethod = errors.Wrap(errors.ErrInvalidInput, "invalid alert method")

	// ErrInvalidDocumentType indicates a document subtype outside docx, xlsx, pptx and pdf.
	ErrInvalidDocumentType = errors.Wrap(errors.ErrInvalidInput, "invalid document type")
)
