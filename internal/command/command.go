// Package command runs the external tools advup drives (msiexec and
// AdvancedInstaller.com itself).
//
// Commands are carried as an executable plus an argument list, never as a
// pre-joined shell string, so license keys and paths with spaces need no
// quoting. Exit code 0 is success; any other exit code is an ExitError whose
// message is the tool's own captured output, surfaced without translation.
package command

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Command is a single external invocation.
type Command struct {
	Path string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// ExitError reports a non-zero exit from an external command.
type ExitError struct {
	Command Command
	Code    int
	Output  string
}

func (e *ExitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s exited with code %d", e.Command.Path, e.Code)
	}

	return e.Output
}

// Commander interface for testing
type Commander interface {
	CombinedOutput() ([]byte, error)
}

// Runner executes commands and captures their output.
type Runner struct {
	execCommand func(name string, args ...string) Commander
}

// NewRunner creates a runner backed by os/exec.
func NewRunner() *Runner {
	return &Runner{
		execCommand: func(name string, args ...string) Commander {
			return exec.Command(name, args...)
		},
	}
}

// Run executes cmd and returns its combined stdout/stderr.
// A non-zero exit code is returned as an *ExitError carrying that output.
func (r *Runner) Run(cmd Command) (string, error) {
	out, err := r.execCommand(cmd.Path, cmd.Args...).CombinedOutput()
	output := string(out)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, &ExitError{
				Command: cmd,
				Code:    exitErr.ExitCode(),
				Output:  strings.TrimSpace(output),
			}
		}

		return output, fmt.Errorf("failed to run %s: %w", cmd.Path, err)
	}

	return output, nil
}
