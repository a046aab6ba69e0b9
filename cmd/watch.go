package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/bocleaner/internal/logging"
)

var watchFormat string

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Clean a build-order log and re-clean it every time it is saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := watchFormat
		if format == "" {
			format = GetConfig().Format
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchFile(ctx, args[0], format, cmd.OutOrStdout(), logger.With("watch"))
	},
}

// watchFile cleans input once, then again on every write or re-create of it
// until ctx is cancelled. Each successful run is reported on progress.
// Failed runs are logged and leave the last good output in place.
func watchFile(ctx context.Context, input, format string, progress io.Writer, log *logging.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors often save by renaming a new file over
	// the old one, which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return err
	}
	target := filepath.Clean(input)

	rebuild := func() {
		out, res, n, err := cleanToFile(input, format, log)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		printWarnings(progress, res.Warnings)
		fmt.Fprintf(progress, "Cleaned %s -> %s (%d lines)\n", input, out, n)
	}
	rebuild()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				rebuild()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; continue watching.
			log.Warnf("watcher: %v", err)
		}
	}
}

func init() {
	watchCmd.Flags().StringVar(&watchFormat, "format", "", "Output format: text or json (overrides config)")
	rootCmd.AddCommand(watchCmd)
}
