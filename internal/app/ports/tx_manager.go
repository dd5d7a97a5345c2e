package ports

import "context"

// TxManager scopes fn to one atomic transaction. Engine operations are
// written so that a failed (not committed) fn leaves no visible side effects,
// which makes retrying on ErrConflict always safe.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
