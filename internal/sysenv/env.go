// Package sysenv owns this process's view of PATH. The machine value can
// change underneath a running process (the elevated helper edits it), and
// Refresh is the one place that pulls such a change in.
package sysenv

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/pink-tools/pink-otel"

	"github.com/pink-tools/pink-jdk/internal/pathlist"
)

// Source supplies a raw PATH value.
type Source interface {
	Read() (string, error)
}

type Environment struct {
	machine   Source
	user      Source
	inherited string
	setenv    func(key, value string) error
	lookPath  func(file string) (string, error)

	mu      sync.Mutex
	current string
}

type Option func(*Environment)

// WithUser adds the per-user PATH, appended after the machine value.
func WithUser(user Source) Option {
	return func(e *Environment) { e.user = user }
}

// WithInherited replaces the PATH captured at startup.
func WithInherited(path string) Option {
	return func(e *Environment) { e.inherited = path }
}

func WithSetenv(setenv func(key, value string) error) Option {
	return func(e *Environment) { e.setenv = setenv }
}

func WithLookPath(lookPath func(file string) (string, error)) Option {
	return func(e *Environment) { e.lookPath = lookPath }
}

func New(machine Source, opts ...Option) *Environment {
	e := &Environment{
		machine:   machine,
		inherited: os.Getenv("PATH"),
		setenv:    os.Setenv,
		lookPath:  exec.LookPath,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.current = e.inherited
	return e
}

// Refresh re-reads the stored PATH and installs it into this process.
// Already running processes, including the parent shell, are unaffected.
func (e *Environment) Refresh() error {
	machine, err := e.machine.Read()
	if err != nil {
		return err
	}

	var user string
	if e.user != nil {
		if user, err = e.user.Read(); err != nil {
			otel.Warn(context.Background(), "failed to read user PATH", otel.Attr{K: "error", V: err.Error()})
			user = ""
		}
	}

	path := compose(machine, user, e.inherited)
	if err := e.setenv("PATH", path); err != nil {
		return err
	}

	e.mu.Lock()
	e.current = path
	e.mu.Unlock()
	return nil
}

// MachineContains reports whether dir is an entry of the stored machine
// value itself, whatever the user PATH adds.
func (e *Environment) MachineContains(dir string) (bool, error) {
	machine, err := e.machine.Read()
	if err != nil {
		return false, err
	}
	return pathlist.Parse(machine).Contains(dir), nil
}

// Path returns the PATH most recently installed by Refresh.
func (e *Environment) Path() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// JavaBinDir returns the directory holding the java executable that PATH
// currently resolves to.
func (e *Environment) JavaBinDir() (string, bool) {
	java, err := e.FindCommand("java")
	if err != nil {
		return "", false
	}
	return filepath.Dir(java), true
}

func (e *Environment) FindCommand(name string) (string, error) {
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		if p, err := e.lookPath(name + ".exe"); err == nil {
			return p, nil
		}
	}
	return e.lookPath(name)
}
