package ui

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/precheck/pkg/errors"
)

// Format selects how command results are written.
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output's capabilities
	FormatAuto Format = iota
	// FormatTerminal renders styled tables and markdown remediation
	FormatTerminal
	// FormatText renders plain lines, suitable for CI logs
	FormatText
	// FormatJSON renders one JSON document per result
	FormatJSON
)

var formatNames = []string{"auto", "term", "text", "json"}

// Formats returns the names accepted by ParseFormat, in flag help order.
func Formats() []string {
	return append([]string(nil), formatNames...)
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s (expected one of %s)",
			s, strings.Join(formatNames, ", ")).
			WithDetail("format", s)
	}
}

// DetectFormat resolves FormatAuto for output. Anything that is not a color
// capable terminal gets FormatText, as does any process with NO_COLOR set.
func DetectFormat(output io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	file, ok := output.(*os.File)
	if !ok {
		return FormatText
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return FormatText
	}

	if termenv.NewOutput(file).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
