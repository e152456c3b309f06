package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"runtool/internal/tools"
	"runtool/internal/tui"
)

var installNoProgress bool

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [tool|all]",
		Short: "Install one tool or the whole curated set",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInstall,
	}
	cmd.Flags().BoolVar(&installNoProgress, "no-progress", false, "Disable the interactive progress display")
	return cmd
}

type installOutcome struct {
	Tool  string `json:"tool"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

func runInstall(cmd *cobra.Command, args []string) error {
	tb, err := buildToolbox()
	if err != nil {
		return err
	}
	defer tb.Close()

	target := "all"
	if len(args) == 1 {
		target = strings.ToLower(args[0])
	}

	var names []string
	if target == "all" {
		names = tb.resolver.Names()
	} else {
		if _, ok := tb.resolver.Lookup(target); !ok {
			return fmt.Errorf("%w: %s", tools.ErrUnknownTool, target)
		}
		names = []string{target}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
	defer cancel()

	out := cmd.OutOrStdout()
	interactive := !outputJSON && tui.DetectInteractive(out, installNoProgress)

	var outcomes []installOutcome
	if interactive {
		outcomes = installWithProgress(ctx, tb, names, out)
	} else {
		outcomes = installSequential(ctx, tb, names)
	}

	if outputJSON {
		data, err := json.MarshalIndent(outcomes, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
	} else if !interactive {
		for _, outcome := range outcomes {
			if outcome.Error != "" {
				cmd.Printf("%-16s error: %s\n", outcome.Tool, outcome.Error)
			} else {
				cmd.Printf("%-16s %s\n", outcome.Tool, outcome.Path)
			}
		}
	}

	var errs []error
	for _, outcome := range outcomes {
		if outcome.Error != "" {
			errs = append(errs, fmt.Errorf("%s: %s", outcome.Tool, outcome.Error))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func installSequential(ctx context.Context, tb *toolbox, names []string) []installOutcome {
	outcomes := make([]installOutcome, 0, len(names))
	for _, name := range names {
		path, err := tb.resolver.Resolve(ctx, name)
		outcome := installOutcome{Tool: name, Path: path}
		if err != nil {
			outcome.Error = err.Error()
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func installWithProgress(ctx context.Context, tb *toolbox, names []string, out io.Writer) []installOutcome {
	model := tui.NewProgressModel(tui.InstallColumns())
	for _, name := range names {
		entry, _ := tb.resolver.Lookup(name)
		model.AddRow(name, []string{name, string(entry.Spec.Kind), "pending", ""})
	}

	outcomes := make([]installOutcome, 0, len(names))
	err := tui.RunWithWork(out, model, func(send func(tea.Msg)) {
		for _, name := range names {
			send(tui.RowUpdateMsg{Key: name, Fields: map[string]string{"STATUS": "resolving"}})
			path, err := tb.resolver.Resolve(ctx, name)
			outcome := installOutcome{Tool: name, Path: path}
			fields := map[string]string{"STATUS": "installed", "PATH": path}
			if err != nil {
				outcome.Error = err.Error()
				fields = map[string]string{"STATUS": "error", "PATH": err.Error()}
			}
			outcomes = append(outcomes, outcome)
			send(tui.RowUpdateMsg{Key: name, Fields: fields})
		}
	})
	if err != nil {
		// The display failed, not the installs. Keep whatever completed.
		for i := len(outcomes); i < len(names); i++ {
			outcomes = append(outcomes, installOutcome{Tool: names[i], Error: "interrupted"})
		}
	}
	return outcomes
}
