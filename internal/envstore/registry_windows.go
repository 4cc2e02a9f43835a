//go:build windows

package envstore

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const (
	environmentKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
	pathValue      = "Path"
)

// Registry is the HKLM Session Manager environment key.
type Registry struct{}

// Machine returns the store backing the machine-wide PATH.
func Machine() Store {
	return &Registry{}
}

func (r *Registry) Read() (string, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, environmentKey, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open key for read: %w", ErrRegistryAccess, err)
	}
	defer key.Close()

	val, _, err := key.GetStringValue(pathValue)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read PATH: %w", ErrRegistryAccess, err)
	}
	return val, nil
}

// Write stores value, keeping the existing value type. PATH is normally
// REG_EXPAND_SZ and entries like %SystemRoot% stop resolving if it is
// rewritten as REG_SZ.
func (r *Registry) Write(value string) error {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, environmentKey, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("%w: failed to open key for update: %w", ErrRegistryAccess, err)
	}
	defer key.Close()

	_, valtype, err := key.GetValue(pathValue, nil)
	if err != nil && err != registry.ErrNotExist {
		return fmt.Errorf("%w: failed to query PATH type: %w", ErrRegistryAccess, err)
	}

	if valtype == registry.EXPAND_SZ {
		err = key.SetExpandStringValue(pathValue, value)
	} else {
		err = key.SetStringValue(pathValue, value)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to update PATH: %w", ErrRegistryAccess, err)
	}
	return nil
}
