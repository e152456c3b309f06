package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newWhichCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "which <tool>",
		Short: "Install a tool if needed, then print its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tb, err := buildToolbox()
			if err != nil {
				return err
			}
			defer tb.Close()

			path, err := tb.resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Println(path)
			return nil
		},
	}
}

// WhichMain implements the standalone run-which binary: `run-which <tool>`.
// The return value is the process exit code.
func WhichMain(argv []string) int {
	tb, err := buildToolbox()
	if err != nil {
		fmt.Fprintf(os.Stderr, "run-which: error: %v\n", err)
		return 1
	}
	defer tb.Close()

	if len(argv) != 1 {
		fmt.Fprintln(os.Stderr, "usage: run-which <tool>")
		return exitUsage
	}

	path, err := tb.resolver.Resolve(context.Background(), argv[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "run-which: error: %v\n", err)
		return exitCodeFor(err)
	}
	fmt.Println(path)
	return 0
}
