//go:build windows

package sysenv

import (
	"strings"

	"golang.org/x/sys/windows/registry"
)

type userPath struct{}

// UserSource is the per-user PATH for WithUser, or nil where there is none.
func UserSource() Source {
	return userPath{}
}

// Read returns the HKCU PATH, or "" when the user has none.
func (userPath) Read() (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, `Environment`, registry.QUERY_VALUE)
	if err != nil {
		return "", nil
	}
	defer key.Close()

	val, _, err := key.GetStringValue("Path")
	if err == registry.ErrNotExist {
		return "", nil
	}
	return val, err
}

// compose mirrors how Windows builds a new process's PATH: machine entries
// first, then the user's, with %VAR% references expanded.
func compose(machine, user, _ string) string {
	var parts []string
	for _, v := range []string{machine, user} {
		v = strings.Trim(expand(v), ";")
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ";")
}

func expand(v string) string {
	if !strings.Contains(v, "%") {
		return v
	}
	if expanded, err := registry.ExpandString(v); err == nil {
		return expanded
	}
	return v
}
