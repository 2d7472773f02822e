package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/precheck/cmd/precheck"
	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/ui/markdown"

	_ "github.com/arthur-debert/precheck/pkg/plugins/exec"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

func main() {
	rootCmd := precheck.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		if remediation := errors.Remediation(err); remediation != "" {
			fmt.Fprintln(os.Stderr)
			fmt.Fprint(os.Stderr, markdown.New().Render(remediation))
		}
		os.Exit(1)
	}
}
