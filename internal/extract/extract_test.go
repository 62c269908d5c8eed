package extract

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/advup/internal/command"
)

type fakeRunner struct {
	commands []command.Command
	err      error
}

func (r *fakeRunner) Run(cmd command.Command) (string, error) {
	r.commands = append(r.commands, cmd)
	return "", r.err
}

type fakeStore struct {
	sourceDir string
	tool      string
	version   string
	arch      string
	root      string
	err       error
}

func (s *fakeStore) Save(sourceDir, tool, version, arch string) (string, error) {
	s.sourceDir = sourceDir
	s.tool = tool
	s.version = version
	s.arch = arch

	return s.root, s.err
}

func TestExtractor_Extract(t *testing.T) {
	runner := &fakeRunner{}
	store := &fakeStore{root: "/cache/tools/advinst/19.0.0/x86"}

	e := New(runner, store, "msiexec", "advinst", "x86", nil)

	root, err := e.Extract("/tmp/payload.msi", "19.0.0")
	require.NoError(t, err)
	assert.Equal(t, store.root, root)

	// Engine invoked once, administrative silent mode into the staging dir
	require.Len(t, runner.commands, 1)
	cmd := runner.commands[0]
	assert.Equal(t, "msiexec", cmd.Path)
	require.Len(t, cmd.Args, 4)
	assert.Equal(t, "/a", cmd.Args[0])
	assert.Equal(t, "/tmp/payload.msi", cmd.Args[1])
	assert.Equal(t, "/qn", cmd.Args[2])
	assert.True(t, strings.HasPrefix(cmd.Args[3], "TARGETDIR="))

	staging := strings.TrimPrefix(cmd.Args[3], "TARGETDIR=")

	// Store committed from the same staging dir the engine targeted
	assert.Equal(t, staging, store.sourceDir)
	assert.Equal(t, "advinst", store.tool)
	assert.Equal(t, "19.0.0", store.version)
	assert.Equal(t, "x86", store.arch)

	// Staging dir cleaned up after commit
	_, statErr := os.Stat(staging)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractor_EngineFailureSurfacesOutput(t *testing.T) {
	engineErr := &command.ExitError{
		Command: command.Command{Path: "msiexec"},
		Code:    1603,
		Output:  "This installation package could not be opened.",
	}
	runner := &fakeRunner{err: engineErr}
	store := &fakeStore{}

	e := New(runner, store, "msiexec", "advinst", "x86", nil)

	_, err := e.Extract("/tmp/payload.msi", "19.0.0")
	require.Error(t, err)

	// The engine's own diagnostic text is the error, untranslated
	assert.Equal(t, "This installation package could not be opened.", err.Error())

	// Nothing was committed
	assert.Empty(t, store.sourceDir)
}

func TestExtractor_StoreFailurePropagates(t *testing.T) {
	runner := &fakeRunner{}
	store := &fakeStore{err: assert.AnError}

	e := New(runner, store, "msiexec", "advinst", "x86", nil)

	_, err := e.Extract("/tmp/payload.msi", "19.0.0")
	assert.ErrorIs(t, err, assert.AnError)
}
