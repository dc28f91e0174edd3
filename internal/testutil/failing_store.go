package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/aka1453/promin/internal/db"
)

// FailOnNthExec is a DBTX wrapper that injects an error on the Nth ExecContext
// call. It simulates a store-write failure at a precise point in the rollup
// cascade, so tests can verify that ancestors are left stale rather than
// half-updated.
//
// ExecContext calls are counted starting at 1. QueryContext and QueryRowContext
// are not counted (reads pass through normally).
type FailOnNthExec struct {
	db.DBTX
	FailOn int32
	Err    error

	count atomic.Int32
}

func (f *FailOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.FailOn {
		return nil, f.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
