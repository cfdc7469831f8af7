package store

import (
	"context"
	"errors"

	"prodanalytics/internal/platform/store/ch"
)

// newCHAdapter wraps an open *ch.CH as the store.Clickhouse seam
func newCHAdapter(c *ch.CH) Clickhouse {
	return &clickhouseAdapter{inner: c}
}

// clickhouseAdapter adapts *ch.CH to the store.Clickhouse interface
type clickhouseAdapter struct {
	inner *ch.CH
}

var _ Clickhouse = (*clickhouseAdapter)(nil)

var errNilCH = errors.New("store: nil clickhouse adapter")

func (a *clickhouseAdapter) Insert(ctx context.Context, table string, rows [][]any) error {
	if a == nil || a.inner == nil {
		return errNilCH
	}
	return a.inner.Insert(ctx, table, rows)
}

func (a *clickhouseAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	if a == nil || a.inner == nil {
		return errNilCH
	}
	return a.inner.Exec(ctx, sql, args...)
}

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if a == nil || a.inner == nil {
		return nil, errNilCH
	}
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &chRows{r: r}, nil
}

// Ping verifies connectivity with ClickHouse
func (a *clickhouseAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errNilCH
	}
	return a.inner.Ping(ctx)
}

func (a *clickhouseAdapter) Close() error {
	if a == nil || a.inner == nil {
		return nil
	}
	return a.inner.Close()
}

// chRows wraps ch.Rows as store.Rows; Close errors surface through Err
type chRows struct {
	r        ch.Rows
	closeErr error
}

func (x *chRows) Next() bool             { return x.r.Next() }
func (x *chRows) Scan(dest ...any) error { return x.r.Scan(dest...) }
func (x *chRows) Columns() []string      { return x.r.Columns() }
func (x *chRows) Close()                 { x.closeErr = x.r.Close() }
func (x *chRows) Err() error             { return errors.Join(x.r.Err(), x.closeErr) }
