//go:build !windows

package envstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pink-tools/pink-jdk/internal/config"
)

// File keeps the managed PATH list in a plain file. There is no machine
// registry outside Windows, so this stands in for it and keeps the same
// semicolon-delimited format.
type File struct {
	path string
}

// Machine returns the store backing the machine-wide PATH.
func Machine() Store {
	return NewFile(config.MachinePathFile())
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Read returns "" when the file does not exist yet.
func (f *File) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: failed to read %s: %w", ErrRegistryAccess, f.path, err)
	}
	return string(data), nil
}

func (f *File) Write(value string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrRegistryAccess, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrRegistryAccess, f.path, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: failed to replace %s: %w", ErrRegistryAccess, f.path, err)
	}
	return nil
}
