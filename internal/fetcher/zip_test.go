package fetcher

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestZIP(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.zip")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestExtractRegistry_Single(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{
		"README.md":       "about",
		"data/fleet.csv": "vessel_id\n1\n",
	})
	dest := t.TempDir()

	got, err := ExtractRegistry(zipPath, "", dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "data", "fleet.csv"), got)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "vessel_id\n1\n", string(data))
}

func TestExtractRegistry_Named(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{
		"a.csv": "x\n",
		"b.csv": "y\n",
	})

	got, err := ExtractRegistry(zipPath, "b.csv", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "b.csv", filepath.Base(got))

	_, err = ExtractRegistry(zipPath, "c.csv", t.TempDir())
	assert.ErrorContains(t, err, "not found")
}

func TestExtractRegistry_Ambiguous(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{"a.csv": "x\n", "b.xlsx": "y"})
	_, err := ExtractRegistry(zipPath, "", t.TempDir())
	assert.ErrorContains(t, err, "expected exactly 1")
}

func TestExtractRegistry_ZipSlip(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{"../evil.csv": "x\n"})
	dest := t.TempDir()
	_, err := ExtractRegistry(zipPath, "", dest)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dest), "evil.csv"))
}

func TestExtractRegistry_NotZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
	_, err := ExtractRegistry(path, "", t.TempDir())
	assert.ErrorContains(t, err, "zip: open archive")
}
