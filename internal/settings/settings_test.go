package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := `scan_dirs:
  - /opt/jdks
  - /usr/lib/jvm
poll_interval: 100ms
poll_timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/jdks", "/usr/lib/jvm"}, s.ScanDirs)
	assert.Equal(t, 100*time.Millisecond, s.PollInterval)
	assert.Equal(t, 5*time.Second, s.PollTimeout)
}

func TestLoadFile_Missing(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestLoadFile_KeepsDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poll_timeout: 3s\n"), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().ScanDirs, s.ScanDirs)
	assert.Equal(t, 3*time.Second, s.PollTimeout)
	assert.Zero(t, s.PollInterval)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poll_timeout: soon\n"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PINK_JDK_HOME", home)

	want := &Settings{ScanDirs: []string{"/opt/jdks"}, PollTimeout: 4 * time.Second}
	require.NoError(t, Save(filepath.Join(home, "settings.yaml"), want))

	got, err := Reload()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, got, again)
}

func TestExistingScanDirs(t *testing.T) {
	dir := t.TempDir()
	s := &Settings{ScanDirs: []string{dir, filepath.Join(dir, "missing")}}
	assert.Equal(t, []string{dir}, s.ExistingScanDirs())
}
