// Package register activates a license and the COM automation interface on a
// resolved Advanced Installer installation.
//
// Neither operation is tracked by the cache — a cache hit still needs both —
// so both are invoked on every run and rely on the tool treating repeated
// registration as a no-op.
package register

import (
	"go.uber.org/zap"

	"github.com/Norgate-AV/advup/internal/command"
)

// Runner executes external commands
type Runner interface {
	Run(cmd command.Command) (string, error)
}

// Registrar runs registration commands against the resolved executable.
type Registrar struct {
	runner Runner
	logger *zap.Logger
}

// New creates a registrar.
func New(runner Runner, logger *zap.Logger) *Registrar {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Registrar{
		runner: runner,
		logger: logger,
	}
}

// Register activates license against the installation at exePath.
// A missing license means "run unlicensed" and is not an error; nothing is
// invoked. A non-zero exit surfaces the tool's own output as the error.
func (r *Registrar) Register(exePath, license string) error {
	if license == "" {
		r.logger.Debug("no license supplied, skipping registration")
		return nil
	}

	r.logger.Info("registering license")

	_, err := r.runner.Run(command.Command{
		Path: exePath,
		Args: []string{"/register", license},
	})

	return err
}

// EnableCOM self-registers the tool's COM automation interface.
func (r *Registrar) EnableCOM(exePath string) error {
	r.logger.Info("registering COM automation interface")

	_, err := r.runner.Run(command.Command{
		Path: exePath,
		Args: []string{"/REGSERVER"},
	})

	return err
}
