//go:build !windows

package cli

import "os"

func expandEntry(entry string) string {
	return os.ExpandEnv(entry)
}
