package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mdrun/internal/markdown"
	"mdrun/internal/script"
)

var outputPath string

// processCmd runs a document's fragments and writes the transformed markdown.
var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Execute a document's fragments and write the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := processFile(args[0])
		if err != nil {
			return err
		}
		dest := outputPath
		if dest == "" {
			dest = defaultOutput(args[0])
		}
		if dest == "-" {
			_, err = os.Stdout.Write(out)
			return err
		}
		if err := os.WriteFile(dest, out, 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (\"-\" for stdout, default <input>.out.md)")
}

// processFile parses, executes and re-renders one document.
func processFile(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	doc, err := markdown.Parse(src, path)
	if err != nil {
		return nil, err
	}
	if err := script.Process(doc, logger); err != nil {
		return nil, err
	}
	return markdown.Render(doc), nil
}

func defaultOutput(input string) string {
	base := strings.TrimSuffix(input, ".md")
	return base + ".out.md"
}
