package category

import (
	"context"
	"fmt"

	"devMart/domain"
	"devMart/pkg/apperr"
	"devMart/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	FindByName(ctx context.Context, name string) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id uint64, patch domain.CategoryPatch) error
	Delete(ctx context.Context, id uint64) error
}

// ProductReader is the slice of the product repository the category
// service needs.
type ProductReader interface {
	FindAllByCategory(ctx context.Context, categoryID uint64) ([]domain.Product, error)
	CountByCategory(ctx context.Context, categoryID uint64) (int64, error)
}

type categoryService struct {
	categoryRepo CategoryRepository
	productRepo  ProductReader
}

func NewCategoryService(categoryRepo CategoryRepository, productRepo ProductReader) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint64) (domain.Category, error) {
	if id == 0 {
		return domain.Category{}, apperr.Validation("invalid category id")
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find category", err)
		return domain.Category{}, err
	}

	return category, nil
}

// GetCategoryProducts returns the category together with the products
// referencing it.
func (s *categoryService) GetCategoryProducts(ctx context.Context, id uint64) (domain.Category, []domain.Product, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find category", err)
		return domain.Category{}, nil, err
	}

	products, err := s.productRepo.FindAllByCategory(ctx, id)
	if err != nil {
		logger.Error("Failed to find category products", err)
		return domain.Category{}, nil, err
	}

	return category, products, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		return nil, apperr.Validation("category name is required")
	}

	_, err := s.categoryRepo.FindByName(ctx, category.Name)
	if err == nil {
		return nil, apperr.Conflictf("category %q already exists", category.Name)
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		logger.Error("Failed to check category name", err)
		return nil, err
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.Error("Failed to create new category", err)
		return nil, err
	}

	logger.Info("category created", "category_id", category.ID)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uint64, patch domain.CategoryPatch) (domain.Category, error) {
	if id == 0 {
		return domain.Category{}, apperr.Validation("category ID is required")
	}

	if patch.Name == nil && patch.Description == nil {
		return domain.Category{}, apperr.Validation("no fields to update")
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		logger.Error("Category not found for update", err)
		return domain.Category{}, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return domain.Category{}, apperr.Validation("category name is required")
		}

		existing, err := s.categoryRepo.FindByName(ctx, *patch.Name)
		if err == nil && existing.ID != id {
			return domain.Category{}, apperr.Conflictf("category %q already exists", *patch.Name)
		}
		if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
			logger.Error("Failed to check category name", err)
			return domain.Category{}, err
		}
	}

	if err := s.categoryRepo.Update(ctx, id, patch); err != nil {
		logger.Error("Failed to update category", err)
		return domain.Category{}, err
	}

	updated, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to fetch updated category", err)
		return domain.Category{}, err
	}

	logger.Info("category updated", "category_id", id)

	return updated, nil
}

// DeleteCategory refuses to delete a category while products still
// reference it.
func (s *categoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if id == 0 {
		return apperr.Validation("invalid category id")
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		logger.Error("Category not found for deletion", err)
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		logger.Error("Failed to count category products", err)
		return err
	}

	if count > 0 {
		return apperr.Conflictf("cannot delete category: %d product(s) reference it", count)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete category", err)
		return err
	}

	logger.Info("category deleted", "category_id", id)

	return nil
}
