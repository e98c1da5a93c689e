package models

import (
	"context"
	"errors"

	"github.com/mytheresa/stock-tracker/pkg/db"
	"gorm.io/gorm"
)

const createAttempts = 5

type ProductsRepository struct {
	db    *gorm.DB
	newID func() string
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db:    db,
		newID: NewProductID,
	}
}

// WithIDGenerator returns a copy of the repository that draws ids from gen.
func (r *ProductsRepository) WithIDGenerator(gen func() string) *ProductsRepository {
	clone := *r
	clone.newID = gen
	return &clone
}

// Create assigns a fresh id and inserts the product. An id collision draws a new id.
func (r *ProductsRepository) Create(ctx context.Context, product *Product) error {
	var err error
	for attempt := 1; attempt <= createAttempts; attempt++ {
		product.ID = r.newID()
		err = r.db.WithContext(ctx).Create(product).Error
		if err == nil {
			return nil
		}
		if db.IsForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		if !db.IsUniqueViolation(err, "") {
			return err
		}
	}
	return err
}

func (r *ProductsRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// Update applies the given changes and returns the stored product.
func (r *ProductsRepository) Update(ctx context.Context, id string, changes ProductChanges) (*Product, error) {
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := changes.columns()
	if len(updates) == 0 {
		return product, nil
	}
	if err := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the product. Deleting an unknown id is not an error.
func (r *ProductsRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Product{}).Error
}
