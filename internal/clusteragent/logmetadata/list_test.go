package logmetadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "pod-a_ns-a_c-a-id-a.log", 4)
	writeTestFile(t, dir, "pod-b_ns-b_c-b-id-b.log", 10)
	writeTestFile(t, dir, "not-a-log-file.txt", 1)

	items, err := List(dir, nil, "node-x")
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[string]Metadata{}
	for _, item := range items {
		byID[item.ID] = item
	}

	require.Contains(t, byID, "a")
	assert.Equal(t, int64(4), byID["a"].FileInfo.Size)
	assert.Equal(t, "ns-a", byID["a"].Spec.Namespace)
	assert.Equal(t, "node-x", byID["a"].Spec.NodeName)

	require.Contains(t, byID, "b")
	assert.Equal(t, int64(10), byID["b"].FileInfo.Size)
}

func TestListNamespaceFilter(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "pod-a_matched_c-a-id-a.log", 1)
	writeTestFile(t, dir, "pod-b_unmatched_c-b-id-b.log", 1)

	items, err := List(dir, []string{"matched"}, "node-x")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestListMissingDirectory(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "does-not-exist"), nil, "node-x")
	assert.Error(t, err)
}
