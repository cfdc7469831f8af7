package repo

import (
	"context"
	"errors"
	"strings"

	"prodanalytics/internal/modkit/repokit"
	"prodanalytics/internal/platform/store"
)

type call struct {
	sql  string
	args []any
}

// fakeTx records statements; failOn makes the first Exec whose sql contains it fail.
// Count queries report every key as present unless the sql contains shortOn
type fakeTx struct {
	calls     []call
	counts    []call
	txs       int
	rolled    int
	committed int
	failOn    string
	failErr   error
	shortOn   string
}

func (f *fakeTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error {
	f.txs++
	if err := fn(f); err != nil {
		f.rolled++
		return err
	}
	f.committed++
	return nil
}

func (f *fakeTx) Exec(_ context.Context, sql string, args ...any) (repokit.CommandTag, error) {
	f.calls = append(f.calls, call{sql: sql, args: args})
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return nil, f.failErr
	}
	return tag(len(args)), nil
}

func (f *fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, errors.New("fakeTx: no query")
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, args ...any) repokit.Row {
	f.counts = append(f.counts, call{sql: sql, args: args})
	n := int64(len(args[0].([]int64)))
	if f.shortOn != "" && strings.Contains(sql, f.shortOn) {
		n--
	}
	return countRow(n)
}

type countRow int64

func (r countRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = int64(r)
	return nil
}

type tag int64

func (t tag) String() string      { return "INSERT" }
func (t tag) RowsAffected() int64 { return int64(t) }

// fakeCH records the clickhouse seam
type fakeCH struct {
	execs     []string
	inserts   map[string][][]any
	insertErr error
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.inserts == nil {
		f.inserts = map[string][][]any{}
	}
	f.inserts[table] = append(f.inserts[table], rows...)
	return nil
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return nil
}

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) {
	return nil, errors.New("fakeCH: no query")
}
func (f *fakeCH) Ping(context.Context) error { return nil }
func (f *fakeCH) Close() error               { return nil }

var _ store.Clickhouse = (*fakeCH)(nil)
