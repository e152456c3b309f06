package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"runtool/internal/paths"
	"runtool/internal/tools"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check installer health",
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	tb, err := buildToolbox()
	if err != nil {
		return err
	}
	defer tb.Close()

	checks := []healthCheck{
		checkBinDir(tb),
		checkGit(),
		checkRegistry(tb),
		checkManifest(tb),
	}

	return writeDoctorResult(cmd, checks)
}

func checkBinDir(tb *toolbox) healthCheck {
	if err := tb.dirs.EnsureBin(); err != nil {
		return healthCheck{Name: "Bin dir", Status: "error", Summary: err.Error()}
	}
	probe, err := os.CreateTemp(tb.dirs.Bin, ".doctor-*")
	if err != nil {
		return healthCheck{Name: "Bin dir", Status: "error", Summary: fmt.Sprintf("not writable: %v", err)}
	}
	probe.Close()
	_ = os.Remove(probe.Name())

	summary := tb.dirs.Bin
	if !onPath(tb.dirs.Bin) {
		return healthCheck{Name: "Bin dir", Status: "warning", Summary: summary + " (not on PATH)"}
	}
	return healthCheck{Name: "Bin dir", Status: "ok", Summary: summary}
}

func checkGit() healthCheck {
	path, err := exec.LookPath("git")
	if err != nil {
		return healthCheck{Name: "Git", Status: "warning", Summary: "git not found in PATH; repo installs will fail"}
	}
	return healthCheck{Name: "Git", Status: "ok", Summary: path}
}

func checkRegistry(tb *toolbox) healthCheck {
	summary := fmt.Sprintf("%d tools registered", len(tb.resolver.Names()))
	if exists, err := paths.FileExists(tb.cfg.RegistryFile); err == nil && exists {
		summary += " (overlay: " + tb.cfg.RegistryFile + ")"
	}
	return healthCheck{Name: "Registry", Status: "ok", Summary: summary}
}

func checkManifest(tb *toolbox) healthCheck {
	store := tools.NewManifestStore(tb.dirs)
	manifest, err := store.Load()
	if err != nil {
		return healthCheck{Name: "Manifest", Status: "error", Summary: err.Error()}
	}

	var valid, stale int
	for name := range manifest.Entries {
		if _, ok, err := store.Get(name); err == nil && ok {
			valid++
		} else {
			stale++
		}
	}

	summary := fmt.Sprintf("%d installed", valid)
	if stale > 0 {
		return healthCheck{Name: "Manifest", Status: "warning", Summary: fmt.Sprintf("%s, %d stale entries", summary, stale)}
	}
	return healthCheck{Name: "Manifest", Status: "ok", Summary: summary}
}

func writeDoctorResult(cmd *cobra.Command, checks []healthCheck) error {
	if outputJSON {
		data, err := json.MarshalIndent(checks, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("RUNTOOL HEALTH:"))

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-10s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}

func onPath(dir string) bool {
	cleaned := filepath.Clean(dir)
	for _, entry := range filepath.SplitList(os.Getenv("PATH")) {
		if filepath.Clean(entry) == cleaned {
			return true
		}
	}
	return false
}
