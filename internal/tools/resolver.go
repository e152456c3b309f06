package tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"runtool/internal/logx"
)

// Installer obtains a tool on disk. *ToolInstaller is the real
// implementation; tests substitute fakes to observe call counts.
type Installer interface {
	Install(ctx context.Context, entry ToolEntry) (InstallResult, error)
}

// Stdio bundles the streams forwarded to an invoked tool.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStdio returns the current process's standard streams.
func OSStdio() Stdio {
	return Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Resolver is the dispatcher: it translates tool names into installed
// executable paths and invocations. The registry is immutable for the
// lifetime of the resolver; installation state lives in the manifest.
type Resolver struct {
	registry  *Registry
	installer Installer
	manifest  *ManifestStore
	log       *log.Logger
}

// NewResolver wires a resolver from its collaborators.
func NewResolver(reg *Registry, installer Installer, manifest *ManifestStore, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = logx.Discard()
	}
	return &Resolver{registry: reg, installer: installer, manifest: manifest, log: logger}
}

// Names returns the registered tool names in sorted order.
func (r *Resolver) Names() []string {
	return r.registry.Names()
}

// Lookup exposes registry entries for status reporting.
func (r *Resolver) Lookup(name string) (ToolEntry, bool) {
	return r.registry.Lookup(name)
}

// Resolve ensures name is installed and returns its absolute executable
// path. A valid manifest entry short-circuits without an installer call.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	entry, ok := r.registry.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	if cached, ok, err := r.manifest.Get(name); err != nil {
		return "", err
	} else if ok {
		r.log.Printf("%s resolved from manifest: %s", name, cached.Path)
		return cached.Path, nil
	}

	result, err := r.installer.Install(ctx, entry)
	if err != nil {
		return "", &InstallError{Tool: name, Err: err}
	}

	abs, err := filepath.Abs(result.Path)
	if err != nil {
		return "", &InstallError{Tool: name, Err: fmt.Errorf("resolve path: %w", err)}
	}

	record := ManifestEntry{
		Tool:        name,
		Kind:        entry.Spec.Kind,
		Path:        abs,
		SourceURL:   result.SourceURL,
		InstalledAt: time.Now().UTC().Format(time.RFC3339),
	}
	if sum, err := computeChecksum(abs); err == nil {
		record.Checksum = sum
	}
	if err := r.manifest.Put(record); err != nil {
		return "", err
	}

	r.log.Printf("%s installed at %s", name, abs)
	return abs, nil
}

// Run resolves name and executes it with args, forwarding the given streams.
// The child's exit status is returned unchanged; a non-zero exit is not an
// error. Interrupt and terminate signals are forwarded to the child while it
// runs.
func (r *Resolver) Run(ctx context.Context, name string, args []string, stdio Stdio) (int, error) {
	path, err := r.Resolve(ctx, name)
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(path, args...)
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err

	if err := cmd.Start(); err != nil {
		// A path the manifest vouched for can still disappear or lose its
		// exec bit between invocations; drop the stale entry.
		_ = r.manifest.Drop(name)
		return 0, &ExecError{Tool: name, Path: path, Err: err}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err = cmd.Wait()
	close(done)
	signal.Stop(signals)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, &ExecError{Tool: name, Path: path, Err: err}
	}
	return 0, nil
}
