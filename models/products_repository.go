package models

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// FindAllWithCategory loads every product with its category eagerly, in
// a bounded number of round trips regardless of result size.
func (r *ProductsRepository) FindAllWithCategory() ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Category").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) FindByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Category").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductsRepository) FindByCategoryID(categoryID uint) ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Category").
		Where("category_id = ?", categoryID).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByNameContaining matches the fragment case-insensitively anywhere
// in the product name. LOWER/LIKE keeps the query portable between
// Postgres and SQLite.
func (r *ProductsRepository) FindByNameContaining(fragment string) ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Category").
		Where("LOWER(name) LIKE LOWER(?)", "%"+fragment+"%").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) FindByStockLessThan(threshold int) ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Category").
		Where("stock < ?", threshold).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) CountByCategoryID(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts or updates a single product record. The category
// association is never written from here; the category service is the
// sole owner of category mutation.
func (r *ProductsRepository) Save(product *Product) error {
	return r.db.Omit(clause.Associations).Save(product).Error
}

func (r *ProductsRepository) DeleteByID(id uint) error {
	res := r.db.Delete(&Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
