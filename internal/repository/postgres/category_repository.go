package postgres

import (
	"context"
	"errors"
	"fmt"

	"devMart/domain"
	"devMart/pkg/apperr"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return apperr.Persistence("failed to create category", err)
	}

	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (domain.Category, error) {
	var category domain.Category

	err := r.DB.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, apperr.NotFoundf("category with id %d not found", id)
		}
		return domain.Category{}, fmt.Errorf("failed to find category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (domain.Category, error) {
	var category domain.Category

	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, apperr.NotFoundf("category %q not found", name)
		}
		return domain.Category{}, fmt.Errorf("failed to find category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category

	if err := r.DB.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

// Update applies only the fields set on the patch.
func (r *CategoryRepository) Update(ctx context.Context, id uint64, patch domain.CategoryPatch) error {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) == 0 {
		return nil
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return apperr.Persistence("failed to update category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("category with id %d not found", id)
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Category{}, id)
	if result.Error != nil {
		return apperr.Persistence("failed to delete category", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFoundf("category with id %d not found", id)
	}

	return nil
}
