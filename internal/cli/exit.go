package cli

import (
	"errors"

	"runtool/internal/tools"
)

// Exit codes for dispatcher failures. A tool that runs to completion has its
// own exit status propagated instead.
const (
	exitUsage       = 2
	exitUnknownTool = 2
	exitInstall     = 3
	exitExec        = 4
)

func exitCodeFor(err error) int {
	var installErr *tools.InstallError
	var execErr *tools.ExecError
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		return exitUnknownTool
	case errors.As(err, &installErr):
		return exitInstall
	case errors.As(err, &execErr):
		return exitExec
	default:
		return 1
	}
}
