package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchCmd reprocesses the input every time it changes on disk. Each pass gets
// a fresh environment, exactly as separate invocations would.
var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Reprocess a document every time it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		dest, err := resolveWatchOutput(input, outputPath)
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()
		// Watch the directory: editors replace files on save, which drops a
		// watch placed on the file itself.
		if err := watcher.Add(filepath.Dir(input)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(input), err)
		}

		run := func() {
			out, err := processFile(input)
			if err != nil {
				logger.Error("processing failed", zap.String("path", input), zap.Error(err))
				return
			}
			if err := os.WriteFile(dest, out, 0644); err != nil {
				logger.Error("write output failed", zap.String("path", dest), zap.Error(err))
				return
			}
			logger.Info("document processed", zap.String("path", input), zap.String("output", dest))
		}
		run()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev.Name == input && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					run()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error", zap.Error(err))
			case <-sig:
				return nil
			}
		}
	},
}

// resolveWatchOutput picks the destination for watch output. input must
// already be absolute; out is compared after resolving it against the working
// directory, so a relative -o naming the watched file is caught too.
func resolveWatchOutput(input, out string) (string, error) {
	if out == "" {
		out = defaultOutput(input)
	}
	if out == "-" {
		return "", fmt.Errorf("watch needs a real output file")
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return "", err
	}
	if abs == input {
		return "", fmt.Errorf("output %s would overwrite the watched input", out)
	}
	return abs, nil
}

func init() {
	watchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default <input>.out.md)")
}
