// Package transaction carries an in-flight gorm transaction through the
// request context so repositories share it transparently.
package transaction

import (
	"context"

	"gorm.io/gorm"
)

type TransactionContextKey struct{}

func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, TransactionContextKey{}, tx)
}

type Database struct {
	db *gorm.DB
}

func (t *Database) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return t.db
}

// RunInTransaction executes fn inside a transaction, placing the tx in
// the context handed to fn.
func (t *Database) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db}
}
