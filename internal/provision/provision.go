// Package provision resolves a requested Advanced Installer version into a
// registered, PATH-visible installation.
//
// Resolution reuses a cached installation when one exists and otherwise
// fetches and extracts a fresh one; apart from latency the two paths are
// indistinguishable to the caller. Registration and environment export run
// on every invocation, cache hit or not, because license state is not
// cached. Any failure aborts the whole sequence; nothing is retried and
// nothing is rolled back.
package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Norgate-AV/advup/internal/semver"
)

// Request is a single provisioning request. Immutable once built.
type Request struct {
	// Version is the requested tool version, free-form (e.g., "19", "19.5.1")
	Version string

	// License is the license key to register; empty means run unlicensed
	License string

	// EnableCOM registers the COM automation interface when set
	EnableCOM bool
}

// Config carries the identity and layout constants the provisioner resolves
// against. Injected rather than global so tests can substitute them.
type Config struct {
	// Tool is the cache key tool name (e.g., "advinst")
	Tool string

	// Architecture is the cache key architecture and bin subdirectory
	Architecture string

	// Executable is the tool executable file name under bin/<arch>/
	Executable string
}

// NotFoundError reports the expected executable missing after resolution.
// This is store corruption, not a cache miss — re-downloading would loop
// forever on the same corrupt entry, so it is fatal.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("executable not found: %s", e.Path)
}

// Store is the lookup side of the installation cache
type Store interface {
	Find(tool, version, arch string) (string, bool, error)
}

// Fetcher retrieves installer payloads
type Fetcher interface {
	Fetch(version string) (string, error)
}

// Extractor unpacks payloads and commits them to the store
type Extractor interface {
	Extract(payload, version string) (string, error)
}

// Registrar activates license and COM state on an installation
type Registrar interface {
	Register(exePath, license string) error
	EnableCOM(exePath string) error
}

// Exporter publishes the environment contract for a resolved root
type Exporter interface {
	Export(root string) error
}

// PathSink extends the executable search path
type PathSink interface {
	PrependPath(dir string) error
}

// Deps are the collaborators a Provisioner orchestrates.
type Deps struct {
	Store     Store
	Fetcher   Fetcher
	Extractor Extractor
	Registrar Registrar
	Exporter  Exporter
	Path      PathSink
	Logger    *zap.Logger
}

// Provisioner is the public entry point composing cache lookup, acquisition,
// registration and environment export.
type Provisioner struct {
	cfg    Config
	deps   Deps
	logger *zap.Logger
}

// New creates a provisioner.
func New(cfg Config, deps Deps) *Provisioner {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provisioner{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
	}
}

// Provision ensures the requested version is installed, registered and on
// PATH, and returns the absolute path of its executable.
func (p *Provisioner) Provision(req Request) (string, error) {
	version := semver.Normalize(req.Version)

	p.logger.Info("provisioning",
		zap.String("tool", p.cfg.Tool),
		zap.String("version", version),
		zap.String("arch", p.cfg.Architecture),
	)

	root, ok, err := p.deps.Store.Find(p.cfg.Tool, version, p.cfg.Architecture)
	if err != nil {
		return "", fmt.Errorf("failed to query store: %w", err)
	}

	if ok {
		p.logger.Info("using cached installation", zap.String("root", root))
	} else {
		p.logger.Info("no cached installation, acquiring")

		payload, err := p.deps.Fetcher.Fetch(req.Version)
		if err != nil {
			return "", err
		}

		root, err = p.deps.Extractor.Extract(payload, version)
		if err != nil {
			return "", err
		}
	}

	exe := filepath.Join(root, "bin", p.cfg.Architecture, p.cfg.Executable)
	if _, err := os.Stat(exe); err != nil {
		return "", &NotFoundError{Path: exe}
	}

	// License and COM state live outside the cache, so these run on every
	// invocation; the tool tolerates repeated registration.
	if err := p.deps.Registrar.Register(exe, req.License); err != nil {
		return "", err
	}

	if req.EnableCOM {
		if err := p.deps.Registrar.EnableCOM(exe); err != nil {
			return "", err
		}
	}

	if err := p.deps.Exporter.Export(root); err != nil {
		return "", err
	}

	if err := p.deps.Path.PrependPath(filepath.Dir(exe)); err != nil {
		return "", err
	}

	return exe, nil
}
