// Package text renders results as plain lines without styling.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/ui/report"
)

// Renderer writes unstyled output.
type Renderer struct {
	output io.Writer
}

// New creates a text renderer.
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders the report types line by line; anything else with %+v.
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder

	switch v := result.(type) {
	case *report.Run:
		if v.Tag != "" {
			fmt.Fprintf(&b, "Release %s (%s) with %s\n", v.Version, v.Tag, v.Plugin)
		} else {
			fmt.Fprintf(&b, "Release %s with %s\n", v.Version, v.Plugin)
		}
		for _, h := range v.Hooks {
			fmt.Fprintf(&b, "  %-18s %s", h.Hook, h.Status)
			if h.Error != "" {
				fmt.Fprintf(&b, ": %s", h.Error)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Result: %s\n", v.Outcome())
	case *report.Check:
		state := "not deployed"
		if v.Deployed {
			state = "already deployed"
		}
		fmt.Fprintf(&b, "Version %s is %s (gate: %s)\n", v.Version, state, v.Gate)
	case *report.Validation:
		fmt.Fprintf(&b, "Valid configuration: %s\n", v.Path)
		fmt.Fprintf(&b, "  deploy_plugin: %s\n", v.Plugin)
		if v.PackageManager != "" {
			fmt.Fprintf(&b, "  is_it_deployed: %s on %s\n", v.PackageName, v.PackageManager)
		}
		if v.SkipCommand != "" {
			fmt.Fprintf(&b, "  should_skip_cmd: %s\n", v.SkipCommand)
		}
		fmt.Fprintf(&b, "  check_after_publish: %t\n", v.VerifyAfterPublish)
		if !v.HasGate() {
			b.WriteString("No gate configured: publish will never be skipped.\n")
		}
	case *report.Plugins:
		if len(v.Plugins) == 0 {
			b.WriteString("No deployment plugins installed.\n")
		}
		for _, p := range v.Plugins {
			fmt.Fprintf(&b, "%s: %s\n", p.Name, strings.Join(p.Hooks, ", "))
		}
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError writes the error and its remediation as plain text.
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}
	out := fmt.Sprintf("Error: %v\n", err)
	if remediation := errors.Remediation(err); remediation != "" {
		out += "\n" + strings.TrimRight(remediation, "\n") + "\n"
	}
	_, werr := io.WriteString(r.output, out)
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
