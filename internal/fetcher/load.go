package fetcher

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/shipdata/internal/record"
)

// LoadOptions configures Load.
type LoadOptions struct {
	Observations ObservationOptions
	CSV          CSVOptions
	XLSX         XLSXOptions
	// Format overrides detection from the file name.
	Format Format
	// Entry names the file to read inside a ZIP archive.
	Entry string
	HTTP  HTTPOptions
	FTP   FTPOptions
}

// Load reads one registry export into observations. src is a local path or
// an http, https or ftp URL; remote files are downloaded to a temporary
// directory that is removed before Load returns.
func Load(ctx context.Context, src string, opts LoadOptions) ([]record.Observation, error) {
	tmp, err := os.MkdirTemp("", "shipdata-*")
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: create temp dir")
	}
	defer os.RemoveAll(tmp) //nolint:errcheck

	local, err := localize(ctx, src, tmp, opts)
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = DetectFormat(src)
	}
	if format == FormatZIP {
		if local, err = ExtractRegistry(local, opts.Entry, tmp); err != nil {
			return nil, err
		}
		format = DetectFormat(local)
	}

	obs, err := readFile(ctx, local, format, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: load %s", src)
	}
	zap.L().Info("fetcher: loaded registry",
		zap.String("src", src),
		zap.String("format", string(format)),
		zap.Int("observations", len(obs)),
	)
	return obs, nil
}

// localize returns a local path for src, downloading it when remote.
func localize(ctx context.Context, src, tmp string, opts LoadOptions) (string, error) {
	u, err := url.Parse(src)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return src, nil
	}

	var f Fetcher
	switch u.Scheme {
	case "http", "https":
		f = NewHTTPFetcher(opts.HTTP)
	case "ftp":
		f = NewFTPFetcher(opts.FTP)
	case "file":
		return u.Path, nil
	default:
		return "", eris.Errorf("fetcher: unsupported scheme %q", u.Scheme)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" {
		name = "download"
	}
	dest := filepath.Join(tmp, name)
	n, err := f.DownloadToFile(ctx, src, dest)
	if err != nil {
		return "", err
	}
	zap.L().Debug("fetcher: downloaded", zap.String("src", src), zap.Int64("bytes", n))
	return dest, nil
}

func readFile(ctx context.Context, local string, format Format, opts LoadOptions) ([]record.Observation, error) {
	switch format {
	case FormatXLSX:
		rows, errs := StreamXLSX(ctx, local, opts.XLSX)
		return ReadObservations(ctx, rows, errs, opts.Observations)
	case FormatCSV, FormatTSV:
		f, err := os.Open(local)
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: open file")
		}
		defer f.Close() //nolint:errcheck

		csvOpts := opts.CSV
		if format == FormatTSV && csvOpts.Delimiter == 0 {
			csvOpts.Delimiter = '\t'
		}
		rows, errs := StreamCSV(ctx, f, csvOpts)
		return ReadObservations(ctx, rows, errs, opts.Observations)
	}
	return nil, eris.Errorf("fetcher: unsupported format %q", string(format))
}
