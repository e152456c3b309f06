package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"runtool/internal/tools"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <tool> [args...]",
		Short: "Install a tool if needed, then run it",
		// Child args pass through untouched, flags included.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			tb, err := buildToolbox()
			if err != nil {
				return err
			}
			defer tb.Close()

			code, err := tb.resolver.Run(cmd.Context(), args[0], args[1:], tools.OSStdio())
			if err != nil {
				return err
			}
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
}

// RunMain implements the standalone run binary: `run <tool> [args...]`.
// Without arguments it prints the tool listing and exits with a usage error.
// The return value is the process exit code.
func RunMain(argv []string) int {
	tb, err := buildToolbox()
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: error: %v\n", err)
		return 1
	}
	defer tb.Close()

	if len(argv) == 0 {
		printToolListing(os.Stderr, tb.resolver.Names())
		return exitUsage
	}

	code, err := tb.resolver.Run(context.Background(), argv[0], argv[1:], tools.OSStdio())
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: error: %v\n", err)
		return exitCodeFor(err)
	}
	return code
}
