//go:build !windows

package envstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pink-tools/pink-jdk/internal/pathlist"
)

func TestFile_MissingReadsEmpty(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "machine-path"))

	val, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestFile_WriteThenRead(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nested", "machine-path"))

	require.NoError(t, f.Write("/opt/jdk-21/bin;"))
	val, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, "/opt/jdk-21/bin;", val)
}

func TestFile_Update(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "machine-path"))
	require.NoError(t, f.Write("/usr/bin;/opt/jdk-17/bin;"))

	changed, err := Update(f, []pathlist.Operation{pathlist.Remove("/opt/jdk-17/bin"), pathlist.Add("/opt/jdk-21/bin")})
	require.NoError(t, err)
	assert.True(t, changed)

	val, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin;/opt/jdk-21/bin;", val)
}
