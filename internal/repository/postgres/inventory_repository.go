package postgres

import (
	"context"
	"errors"
	"fmt"

	"devMart/domain"
	"devMart/pkg/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository owns the stock counter. Every stock mutation in the
// system goes through Reserve or Release, inside a caller-provided
// transaction.
type InventoryRepository struct {
	DB *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{
		DB: db,
	}
}

// LockForUpdate loads a product under a row lock held until the enclosing
// transaction ends, so a stock check stays valid through the decrement.
func (r *InventoryRepository) LockForUpdate(ctx context.Context, tx *gorm.DB, productID uint64) (domain.Product, error) {
	var product domain.Product

	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, apperr.NotFoundf("product with id %d not found", productID)
		}
		return domain.Product{}, fmt.Errorf("failed to lock product: %w", err)
	}

	return product, nil
}

// Reserve decrements stock by quantity. The stock >= quantity guard keeps
// the counter from ever going negative, even on a path that skipped the
// row lock.
func (r *InventoryRepository) Reserve(ctx context.Context, tx *gorm.DB, productID uint64, quantity int) error {
	result := tx.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to reserve stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.Conflictf("insufficient stock for product %d", productID)
	}

	return nil
}

// Release returns quantity units to stock.
func (r *InventoryRepository) Release(ctx context.Context, tx *gorm.DB, productID uint64, quantity int) error {
	result := tx.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to release stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("product with id %d not found", productID)
	}

	return nil
}
