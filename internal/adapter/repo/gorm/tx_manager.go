package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// TxManager scopes one gorm transaction to the context so every repository
// call inside a usecase body shares it. The version-checked updates (pet,
// stake, raid, week) depend on this: the read that captured the expected
// version and the conditional write that consumes it must see the same
// transaction, or the conflict retry loses its meaning.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// getDBFromCtx resolves the transaction RunInTx placed on the context,
// falling back to the root handle for reads issued outside a transaction
// (status views, matchmaking candidate listing).
func getDBFromCtx(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return base
}
