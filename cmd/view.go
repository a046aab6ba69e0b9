package cmd

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/bocleaner/internal/buildorder"
	"github.com/fakeyudi/bocleaner/internal/tui"
)

var plainOutput bool

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Clean a build-order log in memory and browse the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		res, err := process(path, logger)
		if err != nil {
			return err
		}
		lines := buildorder.Resolve(res)

		// Pipes and redirects get the plain rendering.
		if plainOutput || !term.IsTerminal(os.Stdout.Fd()) {
			data, err := (&buildorder.TextRenderer{}).Render(lines)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			return nil
		}
		return tui.Run(lines, res.Warnings, path)
	},
}

func init() {
	viewCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print the cleaned timeline instead of opening the viewer")
	rootCmd.AddCommand(viewCmd)
}
