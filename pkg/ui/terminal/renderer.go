// Package terminal renders results with colors, tables and markdown.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/ui/markdown"
	"github.com/arthur-debert/precheck/pkg/ui/report"
	"github.com/arthur-debert/precheck/pkg/ui/styles"
)

// Renderer writes styled output to a terminal.
type Renderer struct {
	output   io.Writer
	markdown *markdown.Renderer
}

// New creates a terminal renderer.
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, markdown: markdown.New()}
}

// RenderResult renders the report types as tables; anything else with %+v.
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *report.Run:
		return r.renderRun(v)
	case *report.Check:
		return r.renderCheck(v)
	case *report.Validation:
		return r.renderValidation(v)
	case *report.Plugins:
		return r.renderPlugins(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderRun(run *report.Run) error {
	title := fmt.Sprintf("Release %s with %s", run.Version, run.Plugin)
	if run.Tag != "" {
		title = fmt.Sprintf("Release %s (%s) with %s", run.Version, run.Tag, run.Plugin)
	}

	data := pterm.TableData{{"Hook", "Status", "Error"}}
	for _, h := range run.Hooks {
		data = append(data, []string{
			h.Hook,
			styles.StatusStyle(h.Status).Sprint(string(h.Status)),
			h.Error,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	outcome := run.Outcome()
	_, err = fmt.Fprintf(r.output, "%s\n%s\n\n%s %s\n",
		styles.TitleStyle.Render(title),
		table,
		styles.MutedStyle.Render("Result:"),
		styles.OutcomeStyle(outcome).Render(outcome))
	return err
}

func (r *Renderer) renderCheck(c *report.Check) error {
	verdict := styles.WarningStyle.Render("not deployed")
	if c.Deployed {
		verdict = styles.SuccessStyle.Render("already deployed")
	}
	_, err := fmt.Fprintf(r.output, "Version %s is %s (%s)\n",
		styles.CodeStyle.Render(c.Version), verdict, styles.MutedStyle.Render("gate: "+c.Gate))
	return err
}

func (r *Renderer) renderValidation(v *report.Validation) error {
	data := pterm.TableData{
		{"deploy_plugin", v.Plugin},
	}
	if v.PackageManager != "" {
		data = append(data, []string{"is_it_deployed", fmt.Sprintf("%s on %s", v.PackageName, v.PackageManager)})
	}
	if v.SkipCommand != "" {
		data = append(data, []string{"should_skip_cmd", v.SkipCommand})
	}
	data = append(data, []string{"check_after_publish", fmt.Sprintf("%t", v.VerifyAfterPublish)})

	table, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.output, "%s %s\n%s\n",
		styles.SuccessStyle.Render("Valid configuration:"),
		styles.CodeStyle.Render(v.Path),
		table); err != nil {
		return err
	}
	if !v.HasGate() {
		_, err = fmt.Fprintln(r.output, styles.WarningStyle.Render("No gate configured: publish will never be skipped."))
	}
	return err
}

func (r *Renderer) renderPlugins(p *report.Plugins) error {
	if len(p.Plugins) == 0 {
		_, err := fmt.Fprintln(r.output, styles.MutedStyle.Render("No deployment plugins installed."))
		return err
	}

	data := pterm.TableData{{"Plugin", "Hooks"}}
	for _, plugin := range p.Plugins {
		data = append(data, []string{plugin.Name, strings.Join(plugin.Hooks, ", ")})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, table)
	return err
}

// RenderError writes the error code and message, then any remediation.
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}

	line := fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, styles.ErrorStyle.Render(err.Error()))
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		line = fmt.Sprintf("%s Error [%s]: %s", pterm.Error.Prefix.Text, styles.ErrorStyle.Render(string(code)), err.Error())
	}
	if _, werr := fmt.Fprintln(r.output, line); werr != nil {
		return werr
	}

	if remediation := errors.Remediation(err); remediation != "" {
		_, werr := fmt.Fprint(r.output, r.markdown.Render(remediation))
		return werr
	}
	return nil
}

// RenderMessage writes msg as an info line.
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", pterm.Info.Prefix.Text, msg)
	return err
}
