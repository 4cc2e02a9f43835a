package sysenv

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pink-tools/pink-jdk/internal/envstore"
)

type fakeEnv struct {
	vars map[string]string
}

func (f *fakeEnv) setenv(key, value string) error {
	f.vars[key] = value
	return nil
}

// lookPath resolves against the PATH installed through setenv.
func (f *fakeEnv) lookPath(file string) (string, error) {
	for _, dir := range filepath.SplitList(f.vars["PATH"]) {
		candidate := filepath.Join(dir, file)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.New("not found")
}

func newTestEnv(t *testing.T, machine envstore.Store) (*Environment, *fakeEnv) {
	t.Helper()
	f := &fakeEnv{vars: map[string]string{}}
	e := New(machine,
		WithInherited(""),
		WithSetenv(f.setenv),
		WithLookPath(f.lookPath),
	)
	return e, f
}

func makeJava(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "jdk", "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}
	require.NoError(t, os.WriteFile(filepath.Join(bin, name), []byte("#!/bin/sh\n"), 0755))
	return bin
}

func TestRefresh_InstallsStoredValue(t *testing.T) {
	bin := makeJava(t)
	store := envstore.NewMemory(bin + ";")
	e, f := newTestEnv(t, store)

	_, ok := e.JavaBinDir()
	assert.False(t, ok)

	require.NoError(t, e.Refresh())
	assert.Equal(t, bin, f.vars["PATH"])
	assert.Equal(t, bin, e.Path())

	dir, ok := e.JavaBinDir()
	require.True(t, ok)
	assert.Equal(t, bin, dir)
}

func TestRefresh_ReadFailureLeavesPathAlone(t *testing.T) {
	store := envstore.NewMemory("")
	store.FailReads(errors.New("denied"))
	e, f := newTestEnv(t, store)

	err := e.Refresh()
	assert.ErrorIs(t, err, envstore.ErrRegistryAccess)
	_, set := f.vars["PATH"]
	assert.False(t, set)
}

func TestRefresh_PicksUpLaterChanges(t *testing.T) {
	first := makeJava(t)
	second := makeJava(t)
	store := envstore.NewMemory(first + ";")
	e, _ := newTestEnv(t, store)

	require.NoError(t, e.Refresh())
	dir, _ := e.JavaBinDir()
	assert.Equal(t, first, dir)

	require.NoError(t, store.Write(second+";"))
	dir, _ = e.JavaBinDir()
	assert.Equal(t, first, dir, "no implicit refresh")

	require.NoError(t, e.Refresh())
	dir, _ = e.JavaBinDir()
	assert.Equal(t, second, dir)
}

func TestRefresh_AppendsUserPath(t *testing.T) {
	f := &fakeEnv{vars: map[string]string{}}
	e := New(envstore.NewMemory(`machine;`),
		WithUser(envstore.NewMemory(`user;`)),
		WithInherited(""),
		WithSetenv(f.setenv),
		WithLookPath(f.lookPath),
	)

	require.NoError(t, e.Refresh())
	assert.True(t, strings.HasPrefix(f.vars["PATH"], "machine"))
	if runtime.GOOS == "windows" {
		assert.Equal(t, "machine;user", f.vars["PATH"])
	}
}

func TestMachineContains(t *testing.T) {
	store := envstore.NewMemory(`C:\Windows;C:\jdk-17\bin;`)
	e, _ := newTestEnv(t, store)

	ok, err := e.MachineContains(`C:\jdk-17\bin`)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.MachineContains(`C:\jdk-21\bin`)
	require.NoError(t, err)
	assert.False(t, ok)

	store.FailReads(errors.New("denied"))
	_, err = e.MachineContains(`C:\jdk-17\bin`)
	assert.Error(t, err)
}
