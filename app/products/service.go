// Package products owns the product lifecycle. The owning category is
// always resolved through the category service before a write, never
// mutated from here.
package products

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mercatto/inventory-service/app/apperr"
	"github.com/mercatto/inventory-service/models"
)

// ProductView is the read-facing representation of a product, joined
// with the owning category's id and name.
type ProductView struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Stock        int       `json:"stock"`
	CategoryID   uint      `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductInput carries the mutable fields for create and update. Price
// stays a decimal end to end; it only becomes a float at the view edge.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  uint
}

// ProductStore is the persistence contract the service needs.
type ProductStore interface {
	FindAllWithCategory() ([]models.Product, error)
	FindByID(id uint) (*models.Product, error)
	FindByCategoryID(categoryID uint) ([]models.Product, error)
	FindByNameContaining(fragment string) ([]models.Product, error)
	FindByStockLessThan(threshold int) ([]models.Product, error)
	Save(product *models.Product) error
	DeleteByID(id uint) error
}

// CategoryResolver is the read-only slice of the category service used
// to validate the owning category.
type CategoryResolver interface {
	Resolve(id uint) (*models.Category, error)
}

type Service struct {
	store      ProductStore
	categories CategoryResolver
	log        *logrus.Logger
}

func NewService(store ProductStore, categories CategoryResolver, log *logrus.Logger) *Service {
	return &Service{
		store:      store,
		categories: categories,
		log:        log,
	}
}

func toView(product *models.Product) ProductView {
	return ProductView{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price.InexactFloat64(),
		Stock:        product.Stock,
		CategoryID:   product.CategoryID,
		CategoryName: product.Category.Name,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}

func toViews(prods []models.Product) []ProductView {
	views := make([]ProductView, len(prods))
	for i := range prods {
		views[i] = toView(&prods[i])
	}
	return views
}

// List returns all products with their categories joined eagerly.
func (s *Service) List() ([]ProductView, error) {
	prods, err := s.store.FindAllWithCategory()
	if err != nil {
		return nil, err
	}
	return toViews(prods), nil
}

func (s *Service) Get(id uint) (ProductView, error) {
	product, err := s.store.FindByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return ProductView{}, apperr.NotFound("Product", id)
		}
		return ProductView{}, err
	}
	return toView(product), nil
}

// ListByCategory filters by category reference. An unknown category id
// yields an empty result, not an error.
func (s *Service) ListByCategory(categoryID uint) ([]ProductView, error) {
	prods, err := s.store.FindByCategoryID(categoryID)
	if err != nil {
		return nil, err
	}
	return toViews(prods), nil
}

// SearchByName matches the fragment case-insensitively anywhere in the
// product name.
func (s *Service) SearchByName(fragment string) ([]ProductView, error) {
	prods, err := s.store.FindByNameContaining(fragment)
	if err != nil {
		return nil, err
	}
	return toViews(prods), nil
}

// ListLowStock returns products with stock strictly below threshold.
func (s *Service) ListLowStock(threshold int) ([]ProductView, error) {
	prods, err := s.store.FindByStockLessThan(threshold)
	if err != nil {
		return nil, err
	}
	return toViews(prods), nil
}

// Create resolves the category first and writes nothing when it is
// missing.
func (s *Service) Create(input ProductInput) (ProductView, error) {
	s.log.WithField("name", input.Name).Debug("creating product")

	cat, err := s.categories.Resolve(input.CategoryID)
	if err != nil {
		return ProductView{}, err
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  cat.ID,
	}
	if err := s.store.Save(product); err != nil {
		return ProductView{}, err
	}

	product.Category = *cat
	s.log.WithField("id", product.ID).Info("product created")
	return toView(product), nil
}

// Update overwrites all mutable fields, including re-pointing to a
// different existing category.
func (s *Service) Update(id uint, input ProductInput) (ProductView, error) {
	s.log.WithField("id", id).Debug("updating product")

	product, err := s.store.FindByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return ProductView{}, apperr.NotFound("Product", id)
		}
		return ProductView{}, err
	}

	cat, err := s.categories.Resolve(input.CategoryID)
	if err != nil {
		return ProductView{}, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.CategoryID = cat.ID
	if err := s.store.Save(product); err != nil {
		return ProductView{}, err
	}

	product.Category = *cat
	s.log.WithField("id", product.ID).Info("product updated")
	return toView(product), nil
}

func (s *Service) Delete(id uint) error {
	s.log.WithField("id", id).Debug("deleting product")

	if err := s.store.DeleteByID(id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return apperr.NotFound("Product", id)
		}
		return err
	}

	s.log.WithField("id", id).Info("product deleted")
	return nil
}
