package postgres

import (
	"context"
	"errors"
	"fmt"

	"devMart/domain"
	"devMart/pkg/apperr"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return apperr.Persistence("failed to create product", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	var product domain.Product

	err := r.DB.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, apperr.NotFoundf("product with id %d not found", id)
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product

	if err := r.DB.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) FindAllByCategory(ctx context.Context, categoryID uint64) ([]domain.Product, error) {
	var products []domain.Product

	err := r.DB.WithContext(ctx).Where("category_id = ?", categoryID).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	var count int64

	err := r.DB.WithContext(ctx).
		Model(&domain.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}

	return count, nil
}

// Update applies only the fields set on the patch.
func (r *ProductRepository) Update(ctx context.Context, id uint64, patch domain.ProductPatch) error {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Stock != nil {
		updates["stock"] = *patch.Stock
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}

	if len(updates) == 0 {
		return nil
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return apperr.Persistence("failed to update product", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("product with id %d not found", id)
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return apperr.Persistence("failed to delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("product with id %d not found", id)
	}

	return nil
}
