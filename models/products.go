package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mytheresa/stock-tracker/pkg/types"
)

// Product is a stock line inside a category.
// Qty is nil when the quantity is unknown, which is not the same as zero.
type Product struct {
	ID         string `gorm:"primaryKey"`
	CategoryID uint   `gorm:"not null"`
	Name       string `gorm:"not null"`
	Qty        *int
	Unit       string `gorm:"not null"`
	Note       string `gorm:"not null"`
	Grp        string `gorm:"column:grp;not null"`
}

func (p *Product) TableName() string {
	return "products"
}

// IsLow reports whether the product should be flagged against threshold.
// An unknown quantity is always flagged.
func (p Product) IsLow(threshold int) bool {
	return p.Qty == nil || *p.Qty <= threshold
}

// NewProductID returns an 8 character lowercase hex token.
func NewProductID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// ProductChanges lists the fields of a partial product update.
// Nil string pointers and an absent Qty mean unchanged; a present null Qty clears it.
type ProductChanges struct {
	Name *string
	Qty  types.Nullable[int]
	Unit *string
	Note *string
	Grp  *string
}

func (c ProductChanges) columns() map[string]any {
	updates := map[string]any{}
	if c.Name != nil {
		updates["name"] = *c.Name
	}
	if c.Qty.Present {
		if c.Qty.Value == nil {
			updates["qty"] = nil
		} else {
			updates["qty"] = *c.Qty.Value
		}
	}
	if c.Unit != nil {
		updates["unit"] = *c.Unit
	}
	if c.Note != nil {
		updates["note"] = *c.Note
	}
	if c.Grp != nil {
		updates["grp"] = *c.Grp
	}
	return updates
}
