// Package categories owns the category lifecycle and the name
// uniqueness invariant.
package categories

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mercatto/inventory-service/app/apperr"
	"github.com/mercatto/inventory-service/models"
)

// CategoryView is the read-facing representation of a category.
type CategoryView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryStore is the persistence contract the service needs.
type CategoryStore interface {
	FindAll() ([]models.Category, error)
	FindByID(id uint) (*models.Category, error)
	ExistsByName(name string) (bool, error)
	Save(category *models.Category) error
	DeleteByID(id uint) error
}

// ProductCounter reports how many products reference a category.
// Deleting a referenced category is blocked.
type ProductCounter interface {
	CountByCategoryID(categoryID uint) (int64, error)
}

type Service struct {
	store    CategoryStore
	products ProductCounter
	log      *logrus.Logger
}

func NewService(store CategoryStore, products ProductCounter, log *logrus.Logger) *Service {
	return &Service{
		store:    store,
		products: products,
		log:      log,
	}
}

func toView(category *models.Category) CategoryView {
	return CategoryView{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// List returns all categories in store order.
func (s *Service) List() ([]CategoryView, error) {
	cats, err := s.store.FindAll()
	if err != nil {
		return nil, err
	}
	views := make([]CategoryView, len(cats))
	for i := range cats {
		views[i] = toView(&cats[i])
	}
	return views, nil
}

func (s *Service) Get(id uint) (CategoryView, error) {
	cat, err := s.Resolve(id)
	if err != nil {
		return CategoryView{}, err
	}
	return toView(cat), nil
}

// Create persists a new category. The existence check is an early exit;
// the unique index catches the remaining check-then-act window.
func (s *Service) Create(name string) (CategoryView, error) {
	s.log.WithField("name", name).Debug("creating category")

	exists, err := s.store.ExistsByName(name)
	if err != nil {
		return CategoryView{}, err
	}
	if exists {
		return CategoryView{}, apperr.Duplicate("Category", "name", name)
	}

	cat := &models.Category{Name: name}
	if err := s.store.Save(cat); err != nil {
		if errors.Is(err, models.ErrDuplicateCategoryName) {
			return CategoryView{}, apperr.Duplicate("Category", "name", name)
		}
		return CategoryView{}, err
	}

	s.log.WithField("id", cat.ID).Info("category created")
	return toView(cat), nil
}

// Update renames a category. Renaming to the current name skips the
// uniqueness check.
func (s *Service) Update(id uint, name string) (CategoryView, error) {
	s.log.WithField("id", id).Debug("updating category")

	cat, err := s.Resolve(id)
	if err != nil {
		return CategoryView{}, err
	}

	if cat.Name != name {
		exists, err := s.store.ExistsByName(name)
		if err != nil {
			return CategoryView{}, err
		}
		if exists {
			return CategoryView{}, apperr.Duplicate("Category", "name", name)
		}
	}

	cat.Name = name
	if err := s.store.Save(cat); err != nil {
		if errors.Is(err, models.ErrDuplicateCategoryName) {
			return CategoryView{}, apperr.Duplicate("Category", "name", name)
		}
		return CategoryView{}, err
	}

	s.log.WithField("id", cat.ID).Info("category updated")
	return toView(cat), nil
}

// Delete removes a category. A category still referenced by products
// cannot be deleted.
func (s *Service) Delete(id uint) error {
	s.log.WithField("id", id).Debug("deleting category")

	count, err := s.products.CountByCategoryID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict(fmt.Sprintf("category with id %d is still referenced by %d product(s)", id, count))
	}

	if err := s.store.DeleteByID(id); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			return apperr.NotFound("Category", id)
		}
		return err
	}

	s.log.WithField("id", id).Info("category deleted")
	return nil
}

// Resolve returns the full entity for internal callers such as the
// product service.
func (s *Service) Resolve(id uint) (*models.Category, error) {
	cat, err := s.store.FindByID(id)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			return nil, apperr.NotFound("Category", id)
		}
		return nil, err
	}
	return cat, nil
}
