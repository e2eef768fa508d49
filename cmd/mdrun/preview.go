package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// previewCmd processes a document and renders the result to the terminal
// instead of writing a file.
var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Execute a document's fragments and render the result in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := processFile(args[0])
		if err != nil {
			return err
		}
		width := 100
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		rendered, err := r.RenderBytes(out)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		_, err = os.Stdout.Write(rendered)
		return err
	},
}
