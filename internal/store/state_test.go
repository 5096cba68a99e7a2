package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *PreferenceStore {
	t.Helper()
	s, err := NewPreferenceStore(filepath.Join(t.TempDir(), "fxui", "state.json"))
	require.NoError(t, err)
	return s
}

func TestPreferenceStore_DefaultsWhenMissing(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.DarkMode())
	_, ok := s.Get(DarkModeKey)
	assert.False(t, ok)
	assert.Equal(t, int64(0), s.ModTime())
}

func TestPreferenceStore_DarkModeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewPreferenceStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetDarkMode(true))

	// Simulate a restart
	reloaded, err := NewPreferenceStore(path)
	require.NoError(t, err)
	assert.True(t, reloaded.DarkMode())

	require.NoError(t, reloaded.SetDarkMode(false))
	again, err := NewPreferenceStore(path)
	require.NoError(t, err)
	assert.False(t, again.DarkMode())
}

func TestPreferenceStore_StringEncodedValue(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetDarkMode(true))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"darkMode": "true"`)

	v, ok := s.Get(DarkModeKey)
	require.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestPreferenceStore_OnlyExactTrueEnables(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"TRUE", false},
		{"1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, s.Set(DarkModeKey, tt.value))
			assert.Equal(t, tt.expected, s.DarkMode())
		})
	}
}

func TestPreferenceStore_Toggle(t *testing.T) {
	s := newTestStore(t)

	enabled, err := s.ToggleDarkMode()
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.True(t, s.DarkMode())

	enabled, err = s.ToggleDarkMode()
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.False(t, s.DarkMode())
}

func TestPreferenceStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s, err := NewPreferenceStore(path)
	require.NoError(t, err)
	assert.False(t, s.DarkMode())

	// A write replaces the corrupt file
	require.NoError(t, s.SetDarkMode(true))
	reloaded, err := NewPreferenceStore(path)
	require.NoError(t, err)
	assert.True(t, reloaded.DarkMode())
}

func TestPreferenceStore_FilePermissions(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetDarkMode(true))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.NotZero(t, s.ModTime())

	_, err = os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileWatcher_ReloadsOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewPreferenceStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetDarkMode(false))

	fw, err := NewFileWatcher(s)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	// Another process toggles the preference
	other, err := NewPreferenceStore(path)
	require.NoError(t, err)
	require.NoError(t, other.SetDarkMode(true))

	select {
	case <-fw.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
	assert.Eventually(t, s.DarkMode, 2*time.Second, 20*time.Millisecond)
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetDarkMode(false))

	fw, err := NewFileWatcher(s)
	require.NoError(t, err)
	require.NoError(t, fw.Start())

	assert.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop())
}

func TestFileWatcher_FailedStartReleasesWatcher(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPreferenceStore(filepath.Join(dir, "fxui", "state.json"))
	require.NoError(t, err)

	// A regular file where the state directory should be
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fxui"), []byte("x"), 0600))

	fw, err := NewFileWatcher(s)
	require.NoError(t, err)
	require.Error(t, fw.Start())

	assert.ErrorIs(t, fw.watcher.Add(dir), fsnotify.ErrClosed)
	assert.ErrorIs(t, fw.Start(), fsnotify.ErrClosed)
	assert.NoError(t, fw.Stop())
}
