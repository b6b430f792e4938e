package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ExtractRegistry extracts the registry file from a ZIP archive into
// destDir. With name set, that entry is extracted; otherwise the archive
// must hold exactly one CSV, TSV or XLSX file.
func ExtractRegistry(zipPath, name, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	var candidates []*zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if name != "" {
			if f.Name == name {
				return extractEntry(f, destDir)
			}
			continue
		}
		switch DetectFormat(f.Name) {
		case FormatCSV, FormatTSV, FormatXLSX:
			candidates = append(candidates, f)
		}
	}

	if name != "" {
		return "", eris.Errorf("zip: file %q not found in archive", name)
	}
	if len(candidates) != 1 {
		return "", eris.Errorf("zip: expected exactly 1 registry file, got %d", len(candidates))
	}
	return extractEntry(candidates[0], destDir)
}

// extractEntry writes one archive entry below destDir.
func extractEntry(f *zip.File, destDir string) (string, error) {
	destPath := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("zip: illegal path %q (zip slip attempt)", f.Name)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", eris.Wrap(err, "zip: create parent directory")
	}

	rc, err := f.Open()
	if err != nil {
		return "", eris.Wrap(err, "zip: open entry")
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: create file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return "", eris.Wrap(err, "zip: write file")
	}
	return destPath, nil
}
