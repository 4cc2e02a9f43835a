// Package envstore reads and writes the machine-wide PATH value.
//
// Writing requires a process that is already elevated; nothing in this
// package tries to acquire privileges on its own.
package envstore

import (
	"context"
	"errors"

	"github.com/pink-tools/pink-jdk/internal/pathlist"
	"github.com/pink-tools/pink-otel"
)

// ErrRegistryAccess marks failures to open, read or write the PATH value.
var ErrRegistryAccess = errors.New("registry access failed")

// Store is the system of record for the machine PATH.
type Store interface {
	Read() (string, error)
	Write(value string) error
}

// Update applies ops to the stored value in a single read-modify-write pass.
// The write is skipped when the edited value equals the original, so
// listeners of registry change notifications see nothing for a no-op.
func Update(store Store, ops []pathlist.Operation) (changed bool, err error) {
	current, err := store.Read()
	if err != nil {
		return false, err
	}

	updated := pathlist.Apply(current, ops...)
	if updated == current {
		otel.Info(context.Background(), "PATH unchanged", otel.Attr{K: "operations", V: len(ops)})
		return false, nil
	}

	if err := store.Write(updated); err != nil {
		return false, err
	}
	otel.Info(context.Background(), "PATH updated", otel.Attr{K: "operations", V: len(ops)})
	return true, nil
}
