package tools

import (
	"errors"
	"fmt"
)

// ErrUnknownTool reports a name that is not in the registry. The dispatcher
// performs no installer call when returning it.
var ErrUnknownTool = errors.New("unknown tool")

// InstallError wraps a failure reported by the installer.
type InstallError struct {
	Tool string
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install %s: %v", e.Tool, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// ExecError wraps a failure to invoke a resolved binary. It is not used when
// the binary starts and exits non-zero; that exit status is propagated as-is.
type ExecError struct {
	Tool string
	Path string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("exec %s (%s): %v", e.Tool, e.Path, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }
