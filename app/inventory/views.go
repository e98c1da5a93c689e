package inventory

import "github.com/mytheresa/stock-tracker/models"

// Product is the API shape of a product. Empty note and group are sent as null.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Qty   *int    `json:"qty"`
	Unit  string  `json:"unit"`
	Note  *string `json:"note"`
	Group *string `json:"group"`
}

type Category struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Icon              string    `json:"icon"`
	Color             string    `json:"color"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	Products          []Product `json:"products"`
}

// CategorySummary identifies a category without its products.
type CategorySummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type Alert struct {
	Category  CategorySummary `json:"category"`
	Threshold int             `json:"threshold"`
	Products  []Product       `json:"products"`
}

func NewProduct(p models.Product) Product {
	return Product{
		ID:    p.ID,
		Name:  p.Name,
		Qty:   p.Qty,
		Unit:  p.Unit,
		Note:  nullIfEmpty(p.Note),
		Group: nullIfEmpty(p.Grp),
	}
}

func NewCategory(c models.Category) Category {
	products := make([]Product, len(c.Products))
	for i, p := range c.Products {
		products[i] = NewProduct(p)
	}
	return Category{
		ID:                c.ID,
		Name:              c.Name,
		Icon:              c.Icon,
		Color:             c.Color,
		LowStockThreshold: c.LowStockThreshold,
		Products:          products,
	}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
