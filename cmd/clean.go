package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/bocleaner/internal/buildorder"
	"github.com/fakeyudi/bocleaner/internal/logging"
	"github.com/fakeyudi/bocleaner/internal/output"
)

var (
	cleanFormat string
	cleanStdout bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Clean a build-order log into the file named without its leading underscore",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := cleanFormat
		if format == "" {
			format = GetConfig().Format
		}

		if cleanStdout {
			res, _, data, err := render(args[0], format, logger)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			return nil
		}

		out, res, n, err := cleanToFile(args[0], format, logger)
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), res.Warnings)
		cmd.Printf("Cleaned %s -> %s (%d lines)\n", args[0], out, n)
		return nil
	},
}

// process runs the engine over the log at path.
func process(path string, log *logging.Logger) (*buildorder.Result, error) {
	rules, err := buildorder.LoadRules(GetConfig().RulesFile)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()

	res, err := buildorder.Process(f, rules, log.With("processor"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// render processes path and serializes the resolved lines in format.
func render(path, format string, log *logging.Logger) (*buildorder.Result, []buildorder.Line, []byte, error) {
	renderer, err := buildorder.RendererFor(format)
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := process(path, log)
	if err != nil {
		return nil, nil, nil, err
	}
	lines := buildorder.Resolve(res)
	data, err := renderer.Render(lines)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("render timeline: %w", err)
	}
	return res, lines, data, nil
}

// cleanToFile renders input and commits it to the derived output path. It
// returns the path written and the number of lines. Nothing is written
// unless the whole input processed cleanly.
func cleanToFile(input, format string, log *logging.Logger) (string, *buildorder.Result, int, error) {
	ext := ""
	if strings.EqualFold(format, "json") {
		ext = ".json"
	}
	out, err := output.DerivePath(input, GetConfig().OutputDir, ext)
	if err != nil {
		return "", nil, 0, err
	}

	res, lines, data, err := render(input, format, log)
	if err != nil {
		return "", nil, 0, err
	}
	if err := output.WriteAtomic(out, data); err != nil {
		return "", nil, 0, err
	}
	return out, res, len(lines), nil
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
}

func init() {
	cleanCmd.Flags().StringVar(&cleanFormat, "format", "", "Output format: text or json (overrides config)")
	cleanCmd.Flags().BoolVar(&cleanStdout, "stdout", false, "Write the cleaned timeline to stdout instead of a file")
	rootCmd.AddCommand(cleanCmd)
}
