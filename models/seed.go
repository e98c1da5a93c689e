package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type seedProduct struct {
	id   string
	name string
	qty  int // -1 for unknown
	unit string
	note string
	grp  string
}

type seedCategory struct {
	name     string
	icon     string
	color    string
	products []seedProduct
}

// demoInventory is the stock board the service starts with on an empty database.
var demoInventory = []seedCategory{
	{
		name: "Conserves", icon: "fa-solid fa-jar", color: "#c0574f",
		products: []seedProduct{
			{"c01", "Terrine volaille", 370, "", "à 1100", ""},
			{"c02", "Rillettes volaille", 355, "", "", ""},
			{"c03", "Rillettes poulet rôti", -1, "", "stock à vérifier", ""},
			{"c04", "Terrine lapin", 245, "", "", ""},
			{"c05", "Rillettes lapin", 97, "", "", ""},
			{"c06", "Galantine dinde FG", 476, "", "", ""},
			{"c07", "Galantine dinde figues", 375, "", "", ""},
			{"c08", "Pâté foie volaille", -1, "", "stock à vérifier", ""},
			{"c09", "Pâté foie chapon", 169, "", "", ""},
			{"c10", "Gésiers confits", -1, "", "126 en 700g / 24 en 500g", ""},
			{"c11", "Bolo volaille", 63, "", "", ""},
			{"c12", "Cuisses poulet confites", 192, "", "", ""},
			{"c13", "Cuisses canard confites", 103, "", "", ""},
			{"c14", "Pâté canette cognac", 720, "", "", ""},
			{"c15", "Foie gras canard", 132, "", "", ""},
			{"c16", "Poulet curry / coco", 154, "", "", ""},
			{"c17", "Poulet curry / ananas", 1287, "", "", ""},
			{"c18", "Sucre", 8, "", "", ""},
			{"c19", "Chocolat", 2, "", "", ""},
			{"c20", "Café", 19, "", "", ""},
			{"c21", "Cappuccino", 2, "", "", ""},
			{"c22", "Thé", 4, "", "", ""},
		},
	},
	{
		name: "Sous-vides", icon: "fa-solid fa-box-archive", color: "#4f8fc0",
		products: []seedProduct{
			{"sv01", "90mic 170×250", 23, "", "", "90 mic"},
			{"sv02", "90mic 200×300", 24, "", "", "90 mic"},
			{"sv03", "90mic 200×350", -1, "", "stock à vérifier", "90 mic"},
			{"sv04", "90mic 200×400", 10, "", "", "90 mic"},
			{"sv05", "90mic 250×300", 27, "", "", "90 mic"},
			{"sv06", "90mic 250×350", 19, "", "", "90 mic"},
			{"sv07", "90mic 250×400", 20, "", "", "90 mic"},
			{"sv08", "90mic 350×400", 2, "", "", "90 mic"},
			{"sv09", "90mic 300×400", 24, "", "", "90 mic"},
			{"sv10", "90mic 300×500", 21, "", "", "90 mic"},
			{"sv11", "90mic 350×500", 3, "", "", "90 mic"},
			{"sv12", "90mic 400×500", 12, "", "", "90 mic"},
			{"sv13", "145mic 170×250", 17, "", "", "145 mic"},
			{"sv14", "145mic 200×300", 14, "", "", "145 mic"},
			{"sv15", "145mic 250×300", 20, "", "", "145 mic"},
			{"sv16", "145mic 200×400", 12, "", "", "145 mic"},
			{"sv17", "145mic 250×400", 20, "", "", "145 mic"},
			{"sv18", "Gants S", 5, "", "", "Gants"},
			{"sv19", "Gants M", 11, "", "", "Gants"},
			{"sv20", "Gants L", 3, "", "", "Gants"},
			{"sv21", "Gants XL", 4, "", "", "Gants"},
			{"sv22", "Gants XXL", 2, "", "", "Gants"},
			{"sv23", "Raclettes", 3, "", "", ""},
			{"sv24", "Brosses", 2, "", "", ""},
			{"sv25", "Serpillières", 2, "", "", ""},
		},
	},
	{
		name: "Consommables", icon: "fa-solid fa-tape", color: "#6aaf5e",
		products: []seedProduct{
			{"co01", "Petites cartonnettes", 33, "", "", ""},
			{"co02", "Grandes cartonnettes", 50, "", "", ""},
			{"co03", "Cartonnettes brochettes", 10, "cart.", "", ""},
			{"co04", "Papier fond de caisse petit", 5, "", "", ""},
			{"co05", "Papier fond de caisse grand", 12, "", "", ""},
			{"co06", "Élastiques à brider", 13, "poches", "", ""},
			{"co07", "Film étirable 45×300", 12, "rlx", "", ""},
			{"co08", "Pics à brochettes", -1, "", "stock à vérifier", ""},
			{"co09", "Ficelle blanche", 13, "rlx", "", ""},
			{"co10", "Ficelle rouge", 2, "rlx", "", ""},
			{"co11", "Ficelle verte", 1, "rlx", "", ""},
			{"co12", "Ficelle jaune", 3, "rlx", "", ""},
			{"co13", "Essuie-tout", 49, "à 6 rlx", "", ""},
			{"co14", "Papier WC", 86, "", "", ""},
			{"co15", "Manchettes", 32, "poches", "", ""},
			{"co16", "Charlottes", 65, "paquets", "", ""},
			{"co17", "Barbiches", 28, "poches", "", ""},
			{"co18", "Sacs poubelle 100L", 20, "rlx", "", ""},
			{"co19", "Sacs poubelle 160L", 8, "rlx", "", ""},
			{"co20", "Produit vaisselle", 10, "bidons", "", ""},
			{"co21", "Tabliers chair", 9, "", "", ""},
			{"co22", "Éponges", -1, "", "7 paquets + divers = 30", ""},
			{"co23", "Bandes affûtage", 14, "", "", ""},
			{"co24", "Couteaux bouchers", 10, "", "", ""},
			{"co25", "Couteaux saignée", 3, "", "", ""},
			{"co26", "Couteaux généraux", 157, "", "", ""},
			{"co27", "Fusils", 3, "", "", ""},
			{"co28", "Poches lapin", 4, "à 2000", "", ""},
			{"co29", "Poches coq", -1, "", "stock à vérifier", ""},
			{"co30", "Poches vierges", 5, "cart.", "", ""},
			{"co31", "Poches détachables", 11, "cart.", "", ""},
			{"co32", "Poches abats", 206, "paquets", "", ""},
		},
	},
	{
		name: "Épices", icon: "fa-solid fa-pepper-hot", color: "#d9913b",
		products: []seedProduct{
			{"e01", "Merguez", 1, "", "", ""},
			{"e02", "Saucisse", -1, "", "1 à 10 kg", ""},
			{"e03", "Saucisse herbes", -1, "", "36 à 800g", ""},
			{"e04", "Saucisson", 2, "", "", ""},
			{"e05", "Arizona", 9, "", "", ""},
			{"e06", "Indienne", 6, "", "", ""},
			{"e07", "Gros sel", -1, "", "2 à 5 kg", ""},
			{"e08", "Sel fin", -1, "", "2 seaux", ""},
			{"e09", "Poivre", 3, "", "", ""},
			{"e10", "Noix", 5, "", "", ""},
			{"e11", "Marrons", 36, "boîtes", "", ""},
			{"e12", "Cèpes", -1, "", "15 à 500g", ""},
			{"e13", "Morilles", -1, "", "500g", ""},
			{"e14", "Huile", -1, "", "5 à 10L", ""},
			{"e15", "Régilait", -1, "", "3 à 300g", ""},
			{"e16", "Poudre morilles", -1, "", "stock à vérifier", ""},
			{"e17", "Abricots", 1, "boîte", "", ""},
			{"e18", "Figues", -1, "", "1 à 3 kg", ""},
			{"e19", "Pomeaux", -1, "", "stock à vérifier", ""},
			{"e20", "Roquefort", -1, "", "3 à 12", ""},
			{"e21", "Gouda", 3, "balles", "", ""},
			{"e22", "Boyaux chipo", 4, "", "", ""},
			{"e23", "Boyaux tout", 4, "", "", ""},
			{"e24", "Boyaux saucisson", 2, "", "", ""},
		},
	},
	{
		name: "Sabots", icon: "fa-solid fa-shoe-prints", color: "#8e6bbf",
		products: []seedProduct{
			{"s01", "Sabots 37", 10, "paires", "", ""},
			{"s02", "Sabots 38", 3, "paires", "", ""},
			{"s03", "Sabots 39", 3, "paires", "", ""},
			{"s04", "Sabots 40", 2, "paires", "", ""},
			{"s05", "Sabots 41", 2, "paires", "", ""},
			{"s06", "Sabots 42", 1, "paires", "", ""},
			{"s07", "Sabots 43", 4, "paires", "", ""},
			{"s08", "Sabots 45", 1, "paires", "", ""},
		},
	},
	{
		name: "Bottes", icon: "fa-solid fa-socks", color: "#3ba7a0",
		products: []seedProduct{
			{"b01", "Bottes 37", 1, "paires", "", ""},
			{"b02", "Bottes 38", 5, "paires", "", ""},
			{"b03", "Bottes 39", 1, "paires", "", ""},
			{"b04", "Bottes 40", 1, "paires", "", ""},
			{"b05", "Bottes 41", 1, "paires", "", ""},
			{"b06", "Bottes 42", 1, "paires", "", ""},
			{"b07", "Bottes 43", 1, "paires", "", ""},
			{"b08", "Bottes 44", 2, "paires", "", ""},
			{"b09", "Bottes 45", 1, "paires", "", ""},
		},
	},
}

// SeedIfEmpty loads the demo inventory when no category exists yet.
// It reports whether anything was inserted.
func SeedIfEmpty(ctx context.Context, conn *gorm.DB) (bool, error) {
	var count int64
	if err := conn.WithContext(ctx).Model(&Category{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, sc := range demoInventory {
			category := Category{
				Name:              sc.name,
				Icon:              sc.icon,
				Color:             sc.color,
				SortOrder:         i,
				LowStockThreshold: DefaultLowStockThreshold,
			}
			if err := tx.Omit("Products").Create(&category).Error; err != nil {
				return fmt.Errorf("seeding category %q: %w", sc.name, err)
			}

			products := make([]Product, 0, len(sc.products))
			for _, sp := range sc.products {
				products = append(products, sp.toProduct(category.ID))
			}
			if len(products) == 0 {
				continue
			}
			if err := tx.CreateInBatches(products, 50).Error; err != nil {
				return fmt.Errorf("seeding products of %q: %w", sc.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (sp seedProduct) toProduct(categoryID uint) Product {
	p := Product{
		ID:         sp.id,
		CategoryID: categoryID,
		Name:       sp.name,
		Unit:       sp.unit,
		Note:       sp.note,
		Grp:        sp.grp,
	}
	if sp.qty >= 0 {
		qty := sp.qty
		p.Qty = &qty
	}
	return p
}
