package service

import (
	"errors"

	"github.com/geekhaven/brew-backend/internal/app/model"
	"github.com/geekhaven/brew-backend/internal/app/repository"
	"github.com/geekhaven/brew-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must be positive")
)

type ProductListOptions struct {
	Category *model.ProductCategory
	Search   string
	Limit    int
	Offset   int
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name          *string
	Description   *string
	Price         *float64
	Category      *model.ProductCategory
	StockQuantity *int
	ImageURL      *string
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductsByCategory(category model.ProductCategory) ([]model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(id uint, update ProductUpdate) (*model.Product, error)
	DeleteProduct(id uint) error
	CheckStock(productID uint, quantity int) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category": opts.Category,
		"search":   opts.Search,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})

	filter := repository.ProductFilter{
		Category: opts.Category,
		Search:   opts.Search,
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductsByCategory(category model.ProductCategory) ([]model.Product, error) {
	logger.Debug("Fetching products by category", map[string]interface{}{
		"category": category,
	})

	products, err := s.productRepo.FindByCategory(category)
	if err != nil {
		logger.Error("Failed to fetch products by category", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}

	logger.Info("Products fetched by category", map[string]interface{}{
		"category": category,
		"count":    len(products),
	})
	return products, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating new product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
		"price":    product.Price,
	})

	if product.Price <= 0 {
		logger.Warn("Rejected product with non-positive price", map[string]interface{}{
			"name":  product.Name,
			"price": product.Price,
		})
		return ErrInvalidPrice
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name":     product.Name,
			"category": product.Category,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) UpdateProduct(id uint, update ProductUpdate) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to check product existence", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.Price != nil {
		if *update.Price <= 0 {
			logger.Warn("Rejected non-positive price on update", map[string]interface{}{
				"product_id": id,
				"price":      *update.Price,
			})
			return nil, ErrInvalidPrice
		}
		existing.Price = *update.Price
	}
	if update.Category != nil {
		existing.Category = *update.Category
	}
	if update.StockQuantity != nil {
		existing.StockQuantity = *update.StockQuantity
	}
	if update.ImageURL != nil {
		existing.ImageURL = *update.ImageURL
	}

	if err := s.productRepo.Update(existing); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": existing.ID,
		"name":       existing.Name,
	})
	return existing, nil
}

func (s *productService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot delete: product not found", map[string]interface{}{
				"product_id": id,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to check product existence", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) CheckStock(productID uint, quantity int) error {
	logger.Debug("Checking product stock", map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found for stock check", map[string]interface{}{
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product for stock check", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	if product.StockQuantity < quantity {
		logger.Warn("Insufficient product stock", map[string]interface{}{
			"product_id":      productID,
			"requested":       quantity,
			"available_stock": product.StockQuantity,
		})
		return ErrInsufficientStock
	}

	logger.Debug("Product stock sufficient", map[string]interface{}{
		"product_id": productID,
	})
	return nil
}
