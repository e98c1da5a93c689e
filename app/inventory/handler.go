package inventory

import (
	"context"
	"net/http"

	"github.com/mytheresa/stock-tracker/app/responses"
	pkgerrors "github.com/mytheresa/stock-tracker/pkg/errors"
	"github.com/mytheresa/stock-tracker/pkg/logger"
	"github.com/mytheresa/stock-tracker/models"
)

type InventoryProvider interface {
	ListWithProducts(ctx context.Context) ([]models.Category, error)
}

type InventoryHandler struct {
	repo InventoryProvider
	logg *logger.Logger
}

func NewInventoryHandler(r InventoryProvider, logg *logger.Logger) *InventoryHandler {
	return &InventoryHandler{
		repo: r,
		logg: logg,
	}
}

// HandleGetData returns the whole board: categories in display order with their products.
func (h *InventoryHandler) HandleGetData(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListWithProducts(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch inventory"))
		return
	}

	response := make([]Category, len(categories))
	for i, c := range categories {
		response[i] = NewCategory(c)
	}
	responses.WriteSuccess(w, response)
}

// HandleGetAlerts lists, per category, the products at or below the category threshold.
// Products with an unknown quantity are always listed. Categories with nothing to report are left out.
func (h *InventoryHandler) HandleGetAlerts(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListWithProducts(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch inventory"))
		return
	}

	alerts := make([]Alert, 0)
	for _, c := range categories {
		var low []Product
		for _, p := range c.Products {
			if p.IsLow(c.LowStockThreshold) {
				low = append(low, NewProduct(p))
			}
		}
		if len(low) == 0 {
			continue
		}
		alerts = append(alerts, Alert{
			Category: CategorySummary{
				ID:    c.ID,
				Name:  c.Name,
				Icon:  c.Icon,
				Color: c.Color,
			},
			Threshold: c.LowStockThreshold,
			Products:  low,
		})
	}
	responses.WriteSuccess(w, alerts)
}
