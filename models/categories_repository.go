package models

import (
	"context"
	"errors"
	"strings"

	"github.com/mytheresa/stock-tracker/pkg/db"
	"gorm.io/gorm"
)

const appendAttempts = 3

// appendCategorySQL computes the next sort_order and inserts in one statement.
const appendCategorySQL = `INSERT INTO categories (name, icon, color, sort_order, low_stock_threshold)
SELECT ?, ?, ?, COALESCE(MAX(sort_order), -1) + 1, ? FROM categories
RETURNING id, sort_order`

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func orderedProducts(tx *gorm.DB) *gorm.DB {
	return tx.Order("id ASC")
}

// ListWithProducts returns every category by sort_order with its products ordered by id.
func (r *CategoriesRepository) ListWithProducts(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).
		Preload("Products", orderedProducts).
		Order("sort_order ASC, id ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) GetByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).
		Preload("Products", orderedProducts).
		Where("id = ?", id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoriesRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NameTaken reports whether a category other than excludeID already uses name, ignoring case.
// Comparison happens in Go since SQLite's lower() only folds ASCII.
func (r *CategoriesRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var rows []Category
	if err := r.db.WithContext(ctx).Select("id", "name").Find(&rows).Error; err != nil {
		return false, err
	}
	for _, row := range rows {
		if row.ID != excludeID && strings.EqualFold(row.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *CategoriesRepository) ListColors(ctx context.Context) ([]string, error) {
	var colors []string
	if err := r.db.WithContext(ctx).Model(&Category{}).Order("sort_order ASC").Pluck("color", &colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// Append inserts the category at the end of the list and fills in its ID and SortOrder.
// A concurrent append that grabs the same sort_order is retried.
func (r *CategoriesRepository) Append(ctx context.Context, category *Category) error {
	var err error
	for attempt := 1; attempt <= appendAttempts; attempt++ {
		row := r.db.WithContext(ctx).
			Raw(appendCategorySQL, category.Name, category.Icon, category.Color, category.LowStockThreshold).
			Row()
		err = row.Scan(&category.ID, &category.SortOrder)
		if err == nil {
			category.Products = []Product{}
			return nil
		}
		if db.IsUniqueViolation(err, "name_lower") {
			return ErrCategoryNameTaken
		}
		if !db.IsUniqueViolation(err, "sort_order") {
			return err
		}
	}
	return err
}

// Update applies the non-nil changes and returns the refreshed category.
func (r *CategoriesRepository) Update(ctx context.Context, id uint, changes CategoryChanges) (*Category, error) {
	updates := changes.columns()
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			if db.IsUniqueViolation(res.Error, "name_lower") {
				return nil, ErrCategoryNameTaken
			}
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrCategoryNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *CategoriesRepository) UpdateThreshold(ctx context.Context, id uint, threshold int) error {
	res := r.db.WithContext(ctx).
		Model(&Category{}).
		Where("id = ?", id).
		Update("low_stock_threshold", threshold)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes the category; its products go with it through the foreign key cascade.
// Deleting an unknown id is not an error.
func (r *CategoriesRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Category{}).Error
}

func (r *CategoriesRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
