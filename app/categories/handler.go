package categories

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mytheresa/stock-tracker/app/inventory"
	"github.com/mytheresa/stock-tracker/app/responses"
	"github.com/mytheresa/stock-tracker/app/validators"
	"github.com/mytheresa/stock-tracker/models"
	"github.com/mytheresa/stock-tracker/pkg/colors"
	pkgerrors "github.com/mytheresa/stock-tracker/pkg/errors"
	"github.com/mytheresa/stock-tracker/pkg/logger"
	"github.com/mytheresa/stock-tracker/pkg/metrics"
	"github.com/mytheresa/stock-tracker/pkg/types"
)

type CategoryProvider interface {
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	ListColors(ctx context.Context) ([]string, error)
	Append(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uint, changes models.CategoryChanges) (*models.Category, error)
	UpdateThreshold(ctx context.Context, id uint, threshold int) error
	Delete(ctx context.Context, id uint) error
}

type CategoryHandler struct {
	repo    CategoryProvider
	logg    *logger.Logger
	metrics *metrics.InventoryMetrics
	rnd     colors.Source
}

func NewCategoryHandler(r CategoryProvider, logg *logger.Logger, m *metrics.InventoryMetrics) *CategoryHandler {
	return &CategoryHandler{
		repo:    r,
		logg:    logg,
		metrics: m,
		rnd:     colors.Default,
	}
}

// WithColorSource swaps the random source used to pick new category colors.
func (h *CategoryHandler) WithColorSource(rnd colors.Source) *CategoryHandler {
	h.rnd = rnd
	return h
}

type createCategoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Icon  string `json:"icon"`
	Color string `json:"color" validate:"omitempty,rgbhex"`
}

func (req *createCategoryRequest) Normalize() {
	req.Name = validators.SanitizeString(req.Name)
	req.Icon = validators.SanitizeString(req.Icon)
	req.Color = validators.SanitizeString(req.Color)
}

type updateCategoryRequest struct {
	Name  types.Nullable[string] `json:"name"`
	Icon  types.Nullable[string] `json:"icon"`
	Color types.Nullable[string] `json:"color"`
}

type thresholdRequest struct {
	LowStockThreshold *int `json:"low_stock_threshold"`
}

type thresholdResponse struct {
	Success           bool `json:"success"`
	LowStockThreshold int  `json:"low_stock_threshold"`
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input createCategoryRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	if err := h.ensureNameFree(ctx, input.Name, 0); err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	icon := input.Icon
	if icon == "" {
		icon = models.DefaultIcon
	}

	color := input.Color
	if color == "" {
		existing, err := h.repo.ListColors(ctx)
		if err != nil {
			responses.WriteError(ctx, h.logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list category colors"))
			return
		}
		color = colors.Generate(colors.FilterValid(existing), h.rnd)
		h.metrics.IncColorsGenerated()
	}

	category := &models.Category{
		Name:              input.Name,
		Icon:              icon,
		Color:             color,
		LowStockThreshold: models.DefaultLowStockThreshold,
	}
	if err := h.repo.Append(ctx, category); err != nil {
		responses.WriteError(ctx, h.logg, w, mapRepoError(err, "failed to create category"))
		return
	}

	if h.logg != nil {
		h.logg.Info(h.logg.WithFields(ctx, map[string]any{"category_id": category.ID, "color": category.Color}), "category.created")
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, inventory.NewCategory(*category))
}

// HandleUpdate changes name, icon or color. Keys left out of the body keep their value.
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.ParseID(chi.URLParam(r, "id"), "category")
	if err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	var input updateCategoryRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	changes, err := input.changes()
	if err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	if changes.Name != nil {
		if err := h.ensureNameFree(ctx, *changes.Name, id); err != nil {
			responses.WriteError(ctx, h.logg, w, err)
			return
		}
	}

	category, err := h.repo.Update(ctx, id, changes)
	if err != nil {
		responses.WriteError(ctx, h.logg, w, mapRepoError(err, "failed to update category"))
		return
	}
	responses.WriteSuccess(w, inventory.NewCategory(*category))
}

func (req updateCategoryRequest) changes() (models.CategoryChanges, error) {
	var changes models.CategoryChanges
	if req.Name.Present {
		name := validators.SanitizeString(req.Name.Or(""))
		if name == "" {
			return changes, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		changes.Name = &name
	}
	if req.Icon.Present {
		icon := validators.SanitizeString(req.Icon.Or(""))
		if icon == "" {
			icon = models.DefaultIcon
		}
		changes.Icon = &icon
	}
	if req.Color.Present {
		color := validators.SanitizeString(req.Color.Or(""))
		if !colors.IsHex(color) {
			return changes, pkgerrors.New(pkgerrors.CodeValidation, "color must be a #RRGGBB color")
		}
		changes.Color = &color
	}
	return changes, nil
}

// HandleDelete removes a category and its products. Unknown ids still succeed.
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.ParseID(chi.URLParam(r, "id"), "category")
	if err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		responses.WriteError(ctx, h.logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete category"))
		return
	}
	responses.WriteSuccess(w, responses.SuccessBody{Success: true})
}

func (h *CategoryHandler) HandleUpdateThreshold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := validators.ParseID(chi.URLParam(r, "id"), "category")
	if err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	var input thresholdRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	threshold := models.DefaultLowStockThreshold
	if input.LowStockThreshold != nil {
		threshold = *input.LowStockThreshold
	}

	if err := h.repo.UpdateThreshold(ctx, id, threshold); err != nil {
		responses.WriteError(ctx, h.logg, w, mapRepoError(err, "failed to update threshold"))
		return
	}
	responses.WriteSuccess(w, thresholdResponse{Success: true, LowStockThreshold: threshold})
}

func (h *CategoryHandler) ensureNameFree(ctx context.Context, name string, excludeID uint) error {
	taken, err := h.repo.NameTaken(ctx, name, excludeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check category name")
	}
	if taken {
		return pkgerrors.New(pkgerrors.CodeConflict, models.ErrCategoryNameTaken.Error())
	}
	return nil
}

func mapRepoError(err error, internalMsg string) error {
	switch {
	case errors.Is(err, models.ErrCategoryNotFound):
		return pkgerrors.New(pkgerrors.CodeNotFound, err.Error())
	case errors.Is(err, models.ErrCategoryNameTaken):
		return pkgerrors.New(pkgerrors.CodeConflict, err.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, internalMsg)
}
