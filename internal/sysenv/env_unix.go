//go:build !windows

package sysenv

import (
	"os"
	"strings"

	"github.com/pink-tools/pink-jdk/internal/pathlist"
)

func UserSource() Source {
	return nil
}

// compose puts the managed entries in front of the PATH this process
// started with. Nothing outside this tool owns a machine-wide list here, so
// the inherited value stays as the fallback for everything else.
func compose(machine, _ string, inherited string) string {
	entries := pathlist.Parse(machine).Entries()
	sep := string(os.PathListSeparator)
	if inherited != "" {
		entries = append(entries, inherited)
	}
	return strings.Join(entries, sep)
}
