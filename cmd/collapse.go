package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/shipdata/internal/config"
	"github.com/sells-group/shipdata/internal/fetcher"
	"github.com/sells-group/shipdata/internal/record"
)

var (
	collapseKey     string
	collapseWorkers int
	collapseOutput  string
	collapseNoStore bool
)

var collapseCmd = &cobra.Command{
	Use:   "collapse <source>",
	Short: "Collapse duplicate registry records into one record per vessel",
	Long:  "Reads a registry export (CSV, TSV, XLSX or a ZIP holding one) from a path or an http, https or ftp URL, groups rows by vessel key and writes one consensus record per vessel as JSON lines. Results are also saved as a run in the configured store.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if collapseKey != "" {
			cfg.Collapse.Key = collapseKey
		}
		if collapseWorkers > 0 {
			cfg.Collapse.Workers = collapseWorkers
		}

		if collapseOutput != "" && collapseOutput != "-" {
			_, err := collapseToFile(ctx, cfg, args[0], collapseOutput, !collapseNoStore)
			return err
		}
		_, err := runCollapse(ctx, cfg, args[0], cmd.OutOrStdout(), !collapseNoStore)
		return err
	},
}

// collapseToFile runs runCollapse into a file at path. A failed close is
// reported since the last records may not have reached disk.
func collapseToFile(ctx context.Context, c *config.Config, src, path string, save bool) (runID string, err error) {
	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrap(err, "create output")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			runID, err = "", eris.Wrap(cerr, "close output")
		}
	}()
	return runCollapse(ctx, c, src, f, save)
}

// runCollapse loads src, collapses it and writes JSON lines to w. When save
// is set the records are also stored as a new run, whose ID is returned.
func runCollapse(ctx context.Context, c *config.Config, src string, w io.Writer, save bool) (string, error) {
	if err := c.Validate("collapse"); err != nil {
		return "", err
	}

	resolver, err := initResolver(c.Taxonomy)
	if err != nil {
		return "", err
	}
	rules, err := record.WithOverrides(record.DefaultRules(), c.Collapse.Rules)
	if err != nil {
		return "", err
	}
	collapser, err := record.NewCollapser(rules, resolver)
	if err != nil {
		return "", err
	}

	start := time.Now()
	obs, err := fetcher.Load(ctx, src, loadOptions(c))
	if err != nil {
		return "", err
	}
	groups := record.GroupByKey(record.Remap(obs, c.Input.Mappings))

	records, err := collapser.CollapseAll(ctx, groups, c.Collapse.Workers)
	if err != nil {
		return "", err
	}

	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return "", eris.Wrap(err, "write record")
		}
	}

	var runID string
	if save {
		st, err := initStore(ctx, c.Store)
		if err != nil {
			return "", err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.CreateRun(ctx, src)
		if err != nil {
			return "", err
		}
		n, err := st.SaveRun(ctx, run.ID, records)
		if err != nil {
			return "", err
		}
		runID = run.ID
		zap.L().Info("run saved", zap.String("run_id", runID), zap.Int64("fields", n))
	}

	zap.L().Info("collapse complete",
		zap.String("source", src),
		zap.Int("observations", len(obs)),
		zap.Int("vessels", len(records)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return runID, nil
}

// loadOptions translates the input and fetch settings for fetcher.Load.
func loadOptions(c *config.Config) fetcher.LoadOptions {
	opts := fetcher.LoadOptions{
		Observations: fetcher.ObservationOptions{
			KeyColumn: c.Collapse.Key,
			Columns:   c.Input.Columns,
			Source:    c.Input.Source,
		},
		XLSX:   fetcher.XLSXOptions{SheetName: c.Input.Sheet},
		Format: fetcher.Format(c.Input.Format),
		Entry:  c.Input.Entry,
		HTTP: fetcher.HTTPOptions{
			UserAgent:  c.Fetch.UserAgent,
			Timeout:    time.Duration(c.Fetch.TimeoutSecs) * time.Second,
			MaxRetries: c.Fetch.MaxRetries,
			Rate:       rate.Limit(c.Fetch.Rate),
			Burst:      c.Fetch.Burst,
		},
		FTP: fetcher.FTPOptions{
			Timeout:    time.Duration(c.Fetch.TimeoutSecs) * time.Second,
			MaxRetries: c.Fetch.MaxRetries,
		},
	}
	switch d := c.Input.Delimiter; d {
	case "":
	case "tab", `\t`:
		opts.CSV.Delimiter = '\t'
	default:
		opts.CSV.Delimiter, _ = utf8.DecodeRuneInString(d)
	}
	return opts
}

func init() {
	collapseCmd.Flags().StringVar(&collapseKey, "key", "", "vessel key column (default from config)")
	collapseCmd.Flags().IntVar(&collapseWorkers, "workers", 0, "collapse workers (default from config)")
	collapseCmd.Flags().StringVarP(&collapseOutput, "output", "o", "-", "JSON lines output file")
	collapseCmd.Flags().BoolVar(&collapseNoStore, "no-store", false, "skip saving the run")
	rootCmd.AddCommand(collapseCmd)
}
