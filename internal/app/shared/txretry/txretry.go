package txretry

import (
	"context"
	"errors"

	"petverse/internal/app/ports"
)

// Run executes fn in a transaction and retries exactly once when the
// transaction lost a conditional update. A second conflict surfaces to the
// caller.
func Run(ctx context.Context, tx ports.TxManager, fn func(ctx context.Context) error) error {
	err := tx.RunInTx(ctx, fn)
	if errors.Is(err, ports.ErrConflict) {
		return tx.RunInTx(ctx, fn)
	}
	return err
}
