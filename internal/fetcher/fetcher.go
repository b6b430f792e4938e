// Package fetcher reads vessel registry exports from local paths, HTTP and
// FTP. CSV, TSV and XLSX files are supported, optionally inside a ZIP archive.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"
)

// Fetcher downloads a remote registry export.
type Fetcher interface {
	// Download fetches the URL and returns the body. The caller closes it.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL into path and returns the bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// Format is a registry file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatZIP  Format = "zip"
)

// DetectFormat infers the format from a file name or URL path. Query strings
// are ignored. The empty Format means unknown.
func DetectFormat(name string) Format {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" && u.Path != "" {
		name = u.Path
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV
	case ".tsv", ".tab":
		return FormatTSV
	case ".xlsx":
		return FormatXLSX
	case ".zip":
		return FormatZIP
	}
	return ""
}
