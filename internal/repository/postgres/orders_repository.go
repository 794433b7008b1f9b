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

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// CreateOrder persists the order together with its line items inside the
// caller's transaction.
func (r *OrdersRepository) CreateOrder(ctx context.Context, tx *gorm.DB, order *domain.Order) error {
	if err := tx.WithContext(ctx).Create(order).Error; err != nil {
		return apperr.Persistence("failed to create order", err)
	}

	return nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint64) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, apperr.NotFoundf("order with id %d not found", id)
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

// FindByIDForUpdate loads an order and its lines under a row lock inside
// the caller's transaction, so a cancellation cannot race a status change.
func (r *OrdersRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint64) (domain.Order, error) {
	var order domain.Order

	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, apperr.NotFoundf("order with id %d not found", id)
		}
		return domain.Order{}, fmt.Errorf("failed to lock order: %w", err)
	}

	if err := tx.WithContext(ctx).Where("order_id = ?", id).Find(&order.Items).Error; err != nil {
		return domain.Order{}, fmt.Errorf("failed to load order items: %w", err)
	}

	return order, nil
}

func (r *OrdersRepository) FindAllByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint64, status string) error {
	result := tx.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return apperr.Persistence("failed to update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("order with id %d not found", orderID)
	}

	return nil
}
