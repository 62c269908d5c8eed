// Package extract unpacks installer payloads and commits them to the store.
package extract

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Norgate-AV/advup/internal/command"
)

// Saver is the store side the extractor writes to
type Saver interface {
	Save(sourceDir, tool, version, arch string) (string, error)
}

// Runner executes external commands
type Runner interface {
	Run(cmd command.Command) (string, error)
}

// Extractor drives the installer engine to perform an administrative
// (extract-only) installation into a staging directory, then commits the
// result to the store.
type Extractor struct {
	runner Runner
	store  Saver
	engine string
	tool   string
	arch   string
	logger *zap.Logger
}

// New creates an extractor. engine is the installer engine executable
// (msiexec on a real agent).
func New(runner Runner, store Saver, engine, tool, arch string, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		runner: runner,
		store:  store,
		engine: engine,
		tool:   tool,
		arch:   arch,
		logger: logger,
	}
}

// Extract unpacks payload and returns the store root it was committed under.
// version must already be normalized — it becomes part of the store key and
// has to match what lookups use.
//
// A failed engine run surfaces the engine's own output as the error. The
// staging directory is abandoned on failure; nothing is rolled back.
func (e *Extractor) Extract(payload, version string) (string, error) {
	staging, err := os.MkdirTemp("", "advup-extract-")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	cmd := command.Command{
		Path: e.engine,
		Args: []string{"/a", payload, "/qn", "TARGETDIR=" + staging},
	}

	e.logger.Info("extracting installer payload",
		zap.String("payload", payload),
		zap.String("staging", staging),
	)

	if _, err := e.runner.Run(cmd); err != nil {
		return "", err
	}

	root, err := e.store.Save(staging, e.tool, version, e.arch)
	if err != nil {
		return "", err
	}

	os.RemoveAll(staging)

	e.logger.Info("installation cached",
		zap.String("version", version),
		zap.String("root", root),
	)

	return root, nil
}
