package postgres

import (
	"context"

	"gorm.io/gorm"
)

// TxManager scopes a unit of work to a single database transaction.
type TxManager struct {
	DB *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{
		DB: db,
	}
}

// RunInTransaction executes fn inside one transaction. The transaction is
// committed when fn returns nil and rolled back on any error or panic.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.DB.WithContext(ctx).Transaction(fn)
}
