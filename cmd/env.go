package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/shipdata/internal/config"
	"github.com/sells-group/shipdata/internal/geartype"
	"github.com/sells-group/shipdata/internal/store"
	"github.com/sells-group/shipdata/internal/taxonomy"
)

// initResolver loads the configured taxonomy, or the embedded one when no
// path is set.
func initResolver(c config.TaxonomyConfig) (*geartype.Resolver, error) {
	if c.Path == "" {
		idx, err := taxonomy.Default()
		if err != nil {
			return nil, err
		}
		return geartype.New(idx), nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, eris.Wrap(err, "read taxonomy")
	}
	idx, err := taxonomy.Load(data)
	if err != nil {
		return nil, eris.Wrapf(err, "load taxonomy %s", c.Path)
	}
	zap.L().Debug("taxonomy loaded", zap.String("path", c.Path), zap.Int("tags", idx.Len()))
	return geartype.New(idx), nil
}

// initStore opens and migrates the configured store.
func initStore(ctx context.Context, c config.StoreConfig) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch c.Driver {
	case "sqlite":
		dsn := c.DatabaseURL
		if dsn == "" {
			dsn = "shipdata.db"
		}
		st, err = store.NewSQLite(dsn)
	case "postgres":
		st, err = store.NewPostgres(ctx, c.DatabaseURL, &store.PoolConfig{
			MaxConns: c.MaxConns,
			MinConns: c.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", c.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// inputLines returns args, or the non-blank lines of r when args is empty.
func inputLines(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "read input")
	}
	return lines, nil
}
