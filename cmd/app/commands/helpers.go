// Package commands contains CLI command implementations for the application.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Output formats accepted by the --format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// displayTimeLayout is the second-precision layout used in text output.
const displayTimeLayout = "2006-01-02 15:04:05"

// bannerWidth is the width of the rules and titles in text output.
const bannerWidth = 80

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// validateFormat rejects output formats other than text and json.
func validateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(writer io.Writer, v any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// writeBanner writes a centered title between two rules.
func writeBanner(writer io.Writer, title string) {
	rule := strings.Repeat("=", bannerWidth)
	padding := (bannerWidth - len(title)) / 2
	if padding < 0 {
		padding = 0
	}
	_, _ = fmt.Fprintf(writer, "\n%s\n%s%s\n%s\n", rule, strings.Repeat(" ", padding), title, rule)
}

// writeRule writes the separator between list entries.
func writeRule(writer io.Writer) {
	_, _ = fmt.Fprintln(writer, strings.Repeat("-", bannerWidth))
}

// formatTime renders t in UTC at second precision.
func formatTime(t time.Time) string {
	return t.UTC().Format(displayTimeLayout)
}

// ExportFileName returns the default export file name for a snapshot taken at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("canarydrop_export_%s.json", t.UTC().Format("20060102_150405"))
}
