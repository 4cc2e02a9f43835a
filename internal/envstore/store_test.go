package envstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pink-tools/pink-jdk/internal/pathlist"
)

const (
	oldBin = `C:\jdk-17\bin`
	newBin = `C:\jdk-21\bin`
)

func TestUpdate_WritesChangedValue(t *testing.T) {
	store := NewMemory(`C:\Windows;` + oldBin + ";")

	changed, err := Update(store, []pathlist.Operation{pathlist.Remove(oldBin), pathlist.Add(newBin)})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, `C:\Windows;`+newBin+";", store.Value())
	assert.Equal(t, 1, store.Writes())
}

func TestUpdate_SkipsWriteWhenUnchanged(t *testing.T) {
	store := NewMemory(`C:\Windows;` + newBin + ";")

	changed, err := Update(store, []pathlist.Operation{pathlist.Add(newBin)})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, store.Writes())
}

func TestUpdate_SkipsWriteWhenOpsCancelOut(t *testing.T) {
	store := NewMemory(`C:\Windows;`)

	changed, err := Update(store, []pathlist.Operation{pathlist.Add(newBin), pathlist.Remove(newBin)})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, store.Writes())
}

func TestUpdate_ReadFailure(t *testing.T) {
	store := NewMemory("")
	store.FailReads(errors.New("access denied"))

	_, err := Update(store, []pathlist.Operation{pathlist.Add(newBin)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegistryAccess)
	assert.Contains(t, err.Error(), "access denied")
}

func TestUpdate_WriteFailure(t *testing.T) {
	store := NewMemory(`C:\Windows;`)
	store.FailWrites(errors.New("access denied"))

	changed, err := Update(store, []pathlist.Operation{pathlist.Add(newBin)})
	require.Error(t, err)
	assert.False(t, changed)
	assert.ErrorIs(t, err, ErrRegistryAccess)
	assert.Equal(t, `C:\Windows;`, store.Value())
}
