package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"runtool/internal/tools"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered tools",
		RunE:  runList,
	}
}

type listedTool struct {
	Name      string         `json:"name"`
	Kind      tools.SpecKind `json:"kind"`
	Source    string         `json:"source"`
	Installed bool           `json:"installed"`
	Path      string         `json:"path,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	tb, err := buildToolbox()
	if err != nil {
		return err
	}
	defer tb.Close()

	store := tools.NewManifestStore(tb.dirs)

	var listed []listedTool
	for _, name := range tb.resolver.Names() {
		entry, _ := tb.resolver.Lookup(name)
		row := listedTool{Name: name, Kind: entry.Spec.Kind, Source: specSource(entry.Spec)}
		if manifestEntry, ok, err := store.Get(name); err == nil && ok {
			row.Installed = true
			row.Path = manifestEntry.Path
		}
		listed = append(listed, row)
	}

	if outputJSON {
		data, err := json.MarshalIndent(listed, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%-16s %-8s %-9s %s\n", "Tool", "Kind", "Installed", "Path")
	for _, row := range listed {
		installed := "no"
		if row.Installed {
			installed = "yes"
		}
		path := row.Path
		if path == "" {
			path = "-"
		}
		cmd.Printf("%-16s %-8s %-9s %s\n", row.Name, row.Kind, installed, path)
	}
	return nil
}

func specSource(spec tools.InstallSpec) string {
	switch spec.Kind {
	case tools.KindURL, tools.KindPackage:
		return spec.URL
	default:
		return spec.User + "/" + spec.Project
	}
}

// printToolListing writes the usage listing shown when the run binary is
// invoked without a tool name. Each tool appears as a brace-delimited entry
// on its own line so shell pipelines can extract the names:
//
//	run 2>&1 | grep '{' | grep -oE '[0-9a-z.-]+'
func printToolListing(w io.Writer, names []string) {
	fmt.Fprintln(w, "usage: run <tool> [args...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "pre-configured tools:")
	for _, name := range names {
		fmt.Fprintf(w, "    {%s}\n", name)
	}
}
