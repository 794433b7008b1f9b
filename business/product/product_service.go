package product

import (
	"context"
	"fmt"

	"devMart/domain"
	"devMart/pkg/apperr"
	"devMart/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindAllByCategory(ctx context.Context, categoryID uint64) ([]domain.Product, error)
	CountByCategory(ctx context.Context, categoryID uint64) (int64, error)
	Update(ctx context.Context, id uint64, patch domain.ProductPatch) error
	Delete(ctx context.Context, id uint64) error
}

// CategoryFinder resolves category references on products.
type CategoryFinder interface {
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
}

type productService struct {
	productRepo  ProductRepository
	categoryRepo CategoryFinder
}

func NewProductService(productRepo ProductRepository, categoryRepo CategoryFinder) *productService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (domain.Product, error) {
	if id == 0 {
		return domain.Product{}, apperr.Validation("invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find product by id", err)
		return domain.Product{}, err
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if product.Name == "" {
		return nil, apperr.Validation("product name is required")
	}

	if product.Price <= 0 {
		return nil, apperr.Validation("price must be greater than 0")
	}

	if product.Stock < 0 {
		return nil, apperr.Validation("stock cannot be negative")
	}

	if product.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *product.CategoryID); err != nil {
			logger.Error("Category not found for new product", err)
			return nil, err
		}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("Failed to create new product", err)
		return nil, err
	}

	logger.Info("product created", "product_id", product.ID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint64, patch domain.ProductPatch) (domain.Product, error) {
	if id == 0 {
		return domain.Product{}, apperr.Validation("product ID is required")
	}

	if patch.Name != nil && *patch.Name == "" {
		return domain.Product{}, apperr.Validation("product name is required")
	}

	if patch.Price != nil && *patch.Price <= 0 {
		return domain.Product{}, apperr.Validation("price must be greater than 0")
	}

	if patch.Stock != nil && *patch.Stock < 0 {
		return domain.Product{}, apperr.Validation("stock cannot be negative")
	}

	// Verify product exists
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		logger.Error("Product not found for update", err)
		return domain.Product{}, err
	}

	if patch.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *patch.CategoryID); err != nil {
			logger.Error("Category not found for product update", err)
			return domain.Product{}, err
		}
	}

	if err := s.productRepo.Update(ctx, id, patch); err != nil {
		logger.Error("Failed to update product", err)
		return domain.Product{}, err
	}

	updated, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to fetch updated product", err)
		return domain.Product{}, err
	}

	logger.Info("product updated", "product_id", id)

	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		return apperr.Validation("invalid product id")
	}

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		logger.Error("Product not found for deletion", err)
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete product", err)
		return err
	}

	logger.Info("product deleted", "product_id", id)

	return nil
}
