//go:build windows

package cli

import "golang.org/x/sys/windows/registry"

func expandEntry(entry string) string {
	if s, err := registry.ExpandString(entry); err == nil {
		return s
	}
	return entry
}
