package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"runtool/internal/config"
	"runtool/internal/logx"
	"runtool/internal/paths"
	"runtool/internal/tools"
)

var outputJSON bool

// Execute runs the root cobra command for the runtool binary.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runtool",
		Short: "Install and run curated external tools",
	}

	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newInstallCmd())
	cmd.AddCommand(newWhichCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// toolbox bundles the wired collaborators for one invocation.
type toolbox struct {
	cfg      config.Config
	dirs     paths.Dirs
	resolver *tools.Resolver
	closer   io.Closer
}

func (tb *toolbox) Close() {
	if tb.closer != nil {
		_ = tb.closer.Close()
	}
}

// buildToolbox loads configuration, the registry and the file logger, and
// wires the resolver. The registry is constructed once here and injected;
// nothing else holds tool definitions.
func buildToolbox() (*toolbox, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	dirs := paths.FromConfig(cfg)
	if err := dirs.EnsureState(); err != nil {
		return nil, err
	}

	logger, closer, err := logx.New(dirs)
	if err != nil {
		logger = logx.Discard()
		closer = nil
	}

	reg, err := tools.LoadRegistry(cfg.RegistryFile)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}

	installer := tools.NewToolInstaller(dirs, logger)
	resolver := tools.NewResolver(reg, installer, tools.NewManifestStore(dirs), logger)

	return &toolbox{cfg: cfg, dirs: dirs, resolver: resolver, closer: closer}, nil
}
