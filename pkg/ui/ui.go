// Package ui renders command results in terminal, text and JSON formats.
package ui

import (
	"io"

	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/ui/json"
	"github.com/arthur-debert/precheck/pkg/ui/terminal"
	"github.com/arthur-debert/precheck/pkg/ui/text"
)

// Renderer writes results, errors and messages to one output.
type Renderer interface {
	// RenderResult renders one of the report types, or anything else with %+v
	RenderResult(result interface{}) error

	// RenderError renders err with its code and remediation
	RenderError(err error) error

	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format, detecting the format from
// output when it is FormatAuto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	if format == FormatAuto {
		format = DetectFormat(output)
	}

	switch format {
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
