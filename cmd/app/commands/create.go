package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/canarydrop/internal/canary/domain"
	"github.com/allisson/canarydrop/internal/canary/dto"
	"github.com/allisson/canarydrop/internal/canary/usecase"
)

// documentTypeAlias selects a document token whose subtype comes from --document-type.
const documentTypeAlias = "document"

// CreateOptions holds the flags of the create command.
type CreateOptions struct {
	TokenType    string
	DocumentType string
	Name         string
	Memo         string
	AlertMethod  string
	Destination  string
	URL          string
}

// resolveTokenType maps the --type flag to a token type. "document" is combined with
// the document subtype, defaulting to docx.
func resolveTokenType(tokenType, documentType string) (domain.TokenType, error) {
	if tokenType == documentTypeAlias {
		if documentType == "" {
			documentType = domain.DefaultDocumentType
		}
		return domain.DocumentTokenType(documentType)
	}
	return domain.ParseTokenType(tokenType)
}

// RunCreate mints and registers a new canary, then prints its planted value along
// with a usage hint for the token type.
//
// Requirements: Database must be migrated and accessible.
func RunCreate(
	ctx context.Context,
	canaryUseCase usecase.CanaryUseCase,
	logger *slog.Logger,
	writer io.Writer,
	opts CreateOptions,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	tokenType, err := resolveTokenType(opts.TokenType, opts.DocumentType)
	if err != nil {
		return err
	}

	logger.Info("creating canary",
		slog.String("token_type", tokenType.String()),
		slog.String("name", opts.Name),
	)

	canary, err := canaryUseCase.Create(ctx, &domain.CreateCanaryInput{
		TokenType:        tokenType,
		Name:             opts.Name,
		Memo:             opts.Memo,
		AlertMethod:      domain.AlertMethod(opts.AlertMethod),
		AlertDestination: opts.Destination,
		URL:              opts.URL,
	})
	if err != nil {
		return fmt.Errorf("failed to create canary: %w", err)
	}

	if format == FormatJSON {
		if err := writeJSON(writer, dto.MapCanaryToResponse(canary)); err != nil {
			return err
		}
	} else {
		outputCreateText(canary, writer)
	}

	logger.Info("canary created successfully",
		slog.String("token_id", canary.TokenID),
		slog.String("token_type", canary.TokenType.String()),
	)

	return nil
}

// outputCreateText prints the created canary and how to plant it.
func outputCreateText(canary *domain.Canary, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nCanary token created successfully!")
	_, _ = fmt.Fprintf(writer, "\nToken ID: %s\n", canary.TokenID)
	_, _ = fmt.Fprintf(writer, "Type: %s\n", canary.TokenType)
	_, _ = fmt.Fprintf(writer, "Name: %s\n", canary.Name)

	writeUsageHint(canary, writer)

	_, _ = fmt.Fprintf(writer, "\nMonitor with: canarydrop history --token %s\n", canary.TokenID)
}

// writeUsageHint prints the planted value and a type specific hint.
func writeUsageHint(canary *domain.Canary, writer io.Writer) {
	payload := canary.Payload()

	switch canary.TokenType {
	case domain.TokenTypeDNS:
		_, _ = fmt.Fprintf(writer, "\nHostname: %s\n", payload)
		_, _ = fmt.Fprintln(writer, "\nUsage: Embed this hostname in configs or scripts")
	case domain.TokenTypeHTTP:
		_, _ = fmt.Fprintf(writer, "\nURL: %s\n", payload)
		_, _ = fmt.Fprintln(writer, "\nUsage: Share this URL or embed in web pages")
	case domain.TokenTypeAWSKey:
		creds, err := domain.AWSCredentialsFromMetadata(canary.Metadata)
		if err != nil {
			return
		}
		_, _ = fmt.Fprintf(writer, "\nAccess Key ID: %s\n", creds.AccessKeyID)
		_, _ = fmt.Fprintf(writer, "Secret Access Key: %s\n", creds.SecretAccessKey)
		_, _ = fmt.Fprintln(writer, "\nUsage: Plant in config files, .env files, or scripts")
		_, _ = fmt.Fprintln(writer, "\nExample AWS config:")
		_, _ = fmt.Fprint(writer, indent(creds.Profile(canary.Name)))
	case domain.TokenTypeSQL:
		_, _ = fmt.Fprintf(writer, "\nConnection String: %s\n", payload)
		_, _ = fmt.Fprintln(writer, "\nUsage: Plant in application configs or .env files")
		_, _ = fmt.Fprintln(writer, "\nExample .env entry:")
		_, _ = fmt.Fprintf(writer, "  DATABASE_URL=%s\n", payload)
	case domain.TokenTypeEmail:
		_, _ = fmt.Fprintf(writer, "\nEmail: %s\n", payload)
		_, _ = fmt.Fprintln(writer, "\nUsage: Use as contact email in documents or configs")
	case domain.TokenTypeAPIKey:
		_, _ = fmt.Fprintf(writer, "\nAPI Key: %s\n", payload)
		_, _ = fmt.Fprintln(writer, "\nUsage: Plant in scripts or configuration files")
	case domain.TokenTypeQRCode:
		_, _ = fmt.Fprintf(writer, "\nURL: %s\n", payload)
		_, _ = fmt.Fprintln(writer, "\nTo create QR code:")
		_, _ = fmt.Fprintln(writer, "  Visit: https://www.qr-code-generator.com/")
		_, _ = fmt.Fprintf(writer, "  Enter URL: %s\n", payload)
	default:
		if canary.TokenType.IsDocument() {
			_, _ = fmt.Fprintf(writer, "\nCallback URL: %s\n", payload)
			_, _ = fmt.Fprintf(
				writer,
				"\nUsage: Create a %s document and embed this URL as a hidden image\n",
				canary.TokenType.DocumentSubtype(),
			)
		}
	}
}

// indent prefixes every line of s with two spaces.
func indent(s string) string {
	var out []byte
	atLineStart := true
	for i := 0; i < len(s); i++ {
		if atLineStart && s[i] != '\n' {
			out = append(out, ' ', ' ')
		}
		out = append(out, s[i])
		atLineStart = s[i] == '\n'
	}
	return string(out)
}
