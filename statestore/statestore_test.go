package statestore

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimonomid/gantt/core"
	"github.com/dimonomid/gantt/log"
)

func TestMain(m *testing.M) {
	log.SetOutput(ioutil.Discard)
	os.Exit(m.Run())
}

func intPtr(v int) *int {
	return &v
}

func TestStoreFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "state.yaml")

	s1 := New(StoreParams{Filename: fname, Key: "projects.json"})

	_, ok, err := s1.LoadViewState()
	require.NoError(t, err)
	assert.False(t, ok, "nothing is saved yet")

	want := core.SavedView{Scale: core.ScaleHours, Step: 6, ScrollPos: intPtr(-240)}
	require.NoError(t, s1.SaveViewState(want))

	// Another data set doesn't see the view of the first one, and doesn't
	// overwrite it either.
	s2 := New(StoreParams{Filename: fname, Key: "releases.json"})
	_, ok, err = s2.LoadViewState()
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, s2.SaveViewState(core.SavedView{Scale: core.ScaleMonths}))

	got, ok, err := New(StoreParams{Filename: fname, Key: "projects.json"}).LoadViewState()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	got, ok, err = s2.LoadViewState()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, core.SavedView{Scale: core.ScaleMonths}, got)

	data, err := ioutil.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scale: hours")
	assert.Contains(t, string(data), "scroll_pos: -240")
}

func TestStoreInRAM(t *testing.T) {
	s := New(StoreParams{Key: "k"})

	require.NoError(t, s.SaveViewState(core.SavedView{Scale: core.ScaleWeeks, ScrollPos: intPtr(0)}))

	got, ok, err := s.LoadViewState()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, core.ScaleWeeks, got.Scale)
	assert.Equal(t, 0, *got.ScrollPos)
}

func TestStoreCorruptedFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(fname, []byte("views:\n  k:\n    scale: fortnights\n"), 0644))

	s := New(StoreParams{Filename: fname, Key: "k"})

	_, _, err := s.LoadViewState()
	assert.Error(t, err)

	// Saving replaces the corrupted file, so the view can be read back.
	want := core.SavedView{Scale: core.ScaleDays, ScrollPos: intPtr(-10)}
	require.NoError(t, s.SaveViewState(want))

	got, ok, err := New(StoreParams{Filename: fname, Key: "k"}).LoadViewState()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestStoreUnreadableFile(t *testing.T) {
	// A directory in place of the file can't be read; that's not a corrupted
	// file, so it's not overwritten.
	dir := t.TempDir()

	s := New(StoreParams{Filename: dir, Key: "k"})
	assert.Error(t, s.SaveViewState(core.SavedView{Scale: core.ScaleDays}))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}
