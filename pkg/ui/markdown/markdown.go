// Package markdown renders remediation text for the terminal.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// Renderer renders markdown with glamour, falling back to the source text
// when rendering fails.
type Renderer struct {
	// Style is a glamour style name, a style file path, or "auto"
	Style string
	// Width wraps output; 0 keeps glamour's default
	Width int
}

// New creates a renderer with automatic style detection.
func New() *Renderer {
	return &Renderer{Style: "auto"}
}

// Render returns content rendered for the terminal.
func (r *Renderer) Render(content string) string {
	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
