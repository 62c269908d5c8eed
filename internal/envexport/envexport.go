// Package envexport publishes the resolved installation to downstream build
// steps through environment variables and the executable search path.
//
// Mutation goes through the Sink interface so tests assert on a captured map
// instead of real process state. Exports last for the remainder of the
// process; there is no unexport path.
package envexport

import (
	"os"
	"path/filepath"
)

// Sink receives environment mutations
type Sink interface {
	Set(name, value string) error
	PrependPath(dir string) error
}

// OSSink mutates the real process environment.
type OSSink struct{}

func (OSSink) Set(name, value string) error {
	return os.Setenv(name, value)
}

func (OSSink) PrependPath(dir string) error {
	return os.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// MemorySink captures mutations for tests.
type MemorySink struct {
	Vars     map[string]string
	PathDirs []string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{Vars: make(map[string]string)}
}

func (s *MemorySink) Set(name, value string) error {
	s.Vars[name] = value
	return nil
}

func (s *MemorySink) PrependPath(dir string) error {
	s.PathDirs = append(s.PathDirs, dir)
	return nil
}

// Exporter derives and publishes the environment contract from a resolved
// installation root: the root itself and the MSBuild targets path under it.
type Exporter struct {
	sink       Sink
	rootVar    string
	targetsVar string
	targetsRel string
}

// New creates an exporter. targetsRel is the slash-separated path of the
// MSBuild targets directory relative to the installation root.
func New(sink Sink, rootVar, targetsVar, targetsRel string) *Exporter {
	return &Exporter{
		sink:       sink,
		rootVar:    rootVar,
		targetsVar: targetsVar,
		targetsRel: targetsRel,
	}
}

// Export publishes both variables, overwriting any prior values.
func (e *Exporter) Export(root string) error {
	if err := e.sink.Set(e.rootVar, root); err != nil {
		return err
	}

	return e.sink.Set(e.targetsVar, filepath.Join(root, filepath.FromSlash(e.targetsRel)))
}
