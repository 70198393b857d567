package atomicfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWriteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")

	require.NoError(t, WriteJSON(path, payload{Name: "jane", Count: 3}))

	var got payload
	require.NoError(t, ReadJSON(path, &got))
	assert.Equal(t, payload{Name: "jane", Count: 3}, got)
}

func TestWriteJSONReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	require.NoError(t, WriteJSON(path, payload{Name: "one"}))
	require.NoError(t, WriteJSON(path, payload{Name: "two"}))

	var got payload
	require.NoError(t, ReadJSON(path, &got))
	assert.Equal(t, "two", got.Name)

	// The temp file must not survive a successful write.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteJSONIsIndented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, WriteJSON(path, payload{Name: "jane"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"name\"")
}

func TestReadJSONMissingFile(t *testing.T) {
	var got payload
	err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"), &got)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteJSONUnmarshalableValue(t *testing.T) {
	err := WriteJSON(filepath.Join(t.TempDir(), "data.json"), make(chan int))
	assert.Error(t, err)
}

func TestFailedWriteLeavesExistingFileIntact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	require.NoError(t, WriteJSON(path, payload{Name: "jane", Count: 3}))

	// A write that fails partway through must not disturb the current file.
	require.Error(t, WriteJSON(path, make(chan int)))

	var got payload
	require.NoError(t, ReadJSON(path, &got))
	assert.Equal(t, payload{Name: "jane", Count: 3}, got)

	// And it must not leave a temp file next to it either.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.json", entries[0].Name())
}
