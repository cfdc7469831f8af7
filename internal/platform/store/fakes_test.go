package store

import (
	"context"
	"errors"
)

// fakeCH records calls against the Clickhouse seam
type fakeCH struct {
	pingErr  error
	closeErr error
	closed   int
	inserts  map[string][][]any
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	if f.inserts == nil {
		f.inserts = map[string][][]any{}
	}
	f.inserts[table] = append(f.inserts[table], rows...)
	return nil
}
func (f *fakeCH) Exec(context.Context, string, ...any) error { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (Rows, error) {
	return nil, errors.New("fakeCH: no query")
}
func (f *fakeCH) Ping(context.Context) error { return f.pingErr }
func (f *fakeCH) Close() error               { f.closed++; return f.closeErr }

// fakeTx satisfies TxRunner and Pinger
type fakeTx struct {
	pingErr error
	closed  int
	row     Row
}

func (f *fakeTx) Tx(ctx context.Context, fn func(q RowQuerier) error) error { return fn(f) }
func (f *fakeTx) Exec(context.Context, string, ...any) (CommandTag, error) {
	return nil, nil
}
func (f *fakeTx) Query(context.Context, string, ...any) (Rows, error) {
	return nil, errors.New("no rows here")
}
func (f *fakeTx) QueryRow(context.Context, string, ...any) Row { return f.row }
func (f *fakeTx) Ping(context.Context) error                  { return f.pingErr }
func (f *fakeTx) Close() error                                { f.closed++; return nil }

type funcRow func(dest ...any) error

func (f funcRow) Scan(dest ...any) error { return f(dest...) }
