package repokit

import (
	"context"
	"errors"

	"prodanalytics/internal/platform/store"
)

type call struct {
	sql  string
	args []any
}

// fakeQ records every statement it sees
type fakeQ struct {
	calls   []call
	failSQL string
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.calls = append(f.calls, call{sql, append([]any(nil), args...)})
	if f.failSQL != "" && sql == f.failSQL {
		return nil, errors.New("exec failed")
	}
	return nil, nil
}

func (f *fakeQ) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.calls = append(f.calls, call{sql, args})
	return nil, nil
}

func (f *fakeQ) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	f.calls = append(f.calls, call{sql, args})
	return nil
}

// fakeTx runs fn against its fakeQ and counts transactions
type fakeTx struct {
	fakeQ
	txs int
}

func (f *fakeTx) Tx(_ context.Context, fn func(q Queryer) error) error {
	f.txs++
	return fn(&f.fakeQ)
}
