package models

// Category groups products on the stock board.
// SortOrder drives display order; LowStockThreshold flags products running low.
type Category struct {
	ID                uint   `gorm:"primaryKey"`
	Name              string `gorm:"not null"`
	Icon              string `gorm:"not null"`
	Color             string `gorm:"not null"`
	SortOrder         int    `gorm:"not null"`
	LowStockThreshold int    `gorm:"not null"`

	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (c *Category) TableName() string {
	return "categories"
}

const (
	DefaultIcon              = "fa-solid fa-box"
	DefaultLowStockThreshold = 5
)

// CategoryChanges lists the fields of a partial category update. Nil means unchanged.
type CategoryChanges struct {
	Name  *string
	Icon  *string
	Color *string
}

func (c CategoryChanges) columns() map[string]any {
	updates := map[string]any{}
	if c.Name != nil {
		updates["name"] = *c.Name
	}
	if c.Icon != nil {
		updates["icon"] = *c.Icon
	}
	if c.Color != nil {
		updates["color"] = *c.Color
	}
	return updates
}
