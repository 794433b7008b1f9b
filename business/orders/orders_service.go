package orders

import (
	"context"
	"time"

	"devMart/domain"
	"devMart/pkg/apperr"
	"devMart/pkg/logger"
	"devMart/pkg/metrics"

	"gorm.io/gorm"
)

// OrdersRepository contract interface. Write methods run inside the
// transaction handle passed by the service.
type OrdersRepository interface {
	CreateOrder(ctx context.Context, tx *gorm.DB, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (domain.Order, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint64) (domain.Order, error)
	FindAllByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uint64, status string) error
}

// InventoryLedger owns the product stock counter. Reserve and Release are
// the only stock mutations in the system.
type InventoryLedger interface {
	LockForUpdate(ctx context.Context, tx *gorm.DB, productID uint64) (domain.Product, error)
	Reserve(ctx context.Context, tx *gorm.DB, productID uint64, quantity int) error
	Release(ctx context.Context, tx *gorm.DB, productID uint64, quantity int) error
}

// UnitOfWork runs a function inside one commit-or-rollback transaction.
type UnitOfWork interface {
	RunInTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type OrderItemInput struct {
	ProductID uint64
	Quantity  int
}

type OrdersService struct {
	uow       UnitOfWork
	orderRepo OrdersRepository
	inventory InventoryLedger
}

func NewOrdersService(uow UnitOfWork, orderRepo OrdersRepository, inventory InventoryLedger) *OrdersService {
	return &OrdersService{
		uow:       uow,
		orderRepo: orderRepo,
		inventory: inventory,
	}
}

// CreateOrder validates every requested line, snapshots current product
// prices, and persists the order, its lines, and the stock decrements as
// one transaction. On any failure nothing is written.
func (s *OrdersService) CreateOrder(ctx context.Context, userID uint, items []OrderItemInput) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, apperr.Validation("order must contain at least one item")
	}

	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return domain.Order{}, apperr.Validation("every item needs a product_id and a positive quantity")
		}
	}

	start := time.Now()

	var order domain.Order
	err := s.uow.RunInTransaction(ctx, func(tx *gorm.DB) error {
		total := 0.0
		lines := make([]domain.OrderItem, 0, len(items))

		// All validation happens before any mutation. The row locks taken
		// here are held until commit, so the decrements below cannot race
		// a concurrent order for the same products.
		for _, item := range items {
			product, err := s.inventory.LockForUpdate(ctx, tx, item.ProductID)
			if err != nil {
				return err
			}

			if product.Stock < item.Quantity {
				return apperr.Conflictf("insufficient stock for product %s", product.Name)
			}

			lines = append(lines, domain.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
			total += product.Price * float64(item.Quantity)
		}

		order = domain.Order{
			UserID:    userID,
			Total:     total,
			Status:    domain.StatusPending,
			CreatedAt: time.Now(),
			Items:     lines,
		}

		if err := s.orderRepo.CreateOrder(ctx, tx, &order); err != nil {
			return err
		}

		for _, line := range lines {
			if err := s.inventory.Reserve(ctx, tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		// counts both the pre-check rejection and the guarded-decrement one
		if apperr.IsKind(err, apperr.KindConflict) {
			metrics.StockConflicts.Inc()
		}
		logger.Error("Failed to create order", err)
		return domain.Order{}, err
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderCreateLatency.Observe(time.Since(start).Seconds())
	logger.Info("order created", "order_id", order.ID, "user_id", userID, "total", order.Total)

	return order, nil
}

// CancelOrder cancels a pending order owned by userID and restores the
// reserved stock, atomically with the status transition. A cancelled order
// releases its stock exactly once.
func (s *OrdersService) CancelOrder(ctx context.Context, orderID uint64, userID uint) error {
	err := s.uow.RunInTransaction(ctx, func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}

		if order.UserID != userID {
			return apperr.Permission("you do not have permission to cancel this order")
		}

		if order.Status != domain.StatusPending {
			return apperr.Conflictf("cannot cancel an order in status %q", order.Status)
		}

		for _, item := range order.Items {
			err := s.inventory.Release(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				// a product deleted after ordering has no stock to take back
				if apperr.IsKind(err, apperr.KindNotFound) {
					continue
				}
				return err
			}
		}

		return s.orderRepo.UpdateStatus(ctx, tx, order.ID, domain.StatusCancelled)
	})
	if err != nil {
		logger.Error("Failed to cancel order", err)
		return err
	}

	metrics.OrdersCancelled.Inc()
	logger.Info("order cancelled", "order_id", orderID, "user_id", userID)

	return nil
}

// UpdateOrderStatus sets the status directly. Stock is not touched here,
// even when the requested status is cancelled; only CancelOrder returns
// reserved stock.
func (s *OrdersService) UpdateOrderStatus(ctx context.Context, orderID uint64, status string) (domain.Order, error) {
	if status == "" {
		return domain.Order{}, apperr.Validation("status is required")
	}

	if !domain.ValidOrderStatuses[status] {
		return domain.Order{}, apperr.Validationf("invalid status %q", status)
	}

	err := s.uow.RunInTransaction(ctx, func(tx *gorm.DB) error {
		return s.orderRepo.UpdateStatus(ctx, tx, orderID, status)
	})
	if err != nil {
		logger.Error("Failed to update order status", err)
		return domain.Order{}, err
	}

	logger.Info("order status updated", "order_id", orderID, "status", status)

	return s.orderRepo.FindByID(ctx, orderID)
}

// GetOrder returns an order to its owner.
func (s *OrdersService) GetOrder(ctx context.Context, orderID uint64, userID uint) (domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if order.UserID != userID {
		return domain.Order{}, apperr.Permission("you do not have permission to view this order")
	}

	return order, nil
}

// GetUserOrders lists the user's orders, newest first.
func (s *OrdersService) GetUserOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.orderRepo.FindAllByUser(ctx, userID)
}
