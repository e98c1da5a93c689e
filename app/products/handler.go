package products

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mytheresa/stock-tracker/app/inventory"
	"github.com/mytheresa/stock-tracker/app/responses"
	"github.com/mytheresa/stock-tracker/app/validators"
	"github.com/mytheresa/stock-tracker/models"
	pkgerrors "github.com/mytheresa/stock-tracker/pkg/errors"
	"github.com/mytheresa/stock-tracker/pkg/logger"
	"github.com/mytheresa/stock-tracker/pkg/types"
)

type ProductProvider interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, changes models.ProductChanges) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// CategoryLookup resolves the category a new product is filed under.
type CategoryLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type ProductHandler struct {
	repo       ProductProvider
	categories CategoryLookup
	logg       *logger.Logger
}

func NewProductHandler(r ProductProvider, c CategoryLookup, logg *logger.Logger) *ProductHandler {
	return &ProductHandler{
		repo:       r,
		categories: c,
		logg:       logg,
	}
}

type createProductRequest struct {
	CategoryID types.FlexID `json:"category_id" validate:"required"`
	Name       string       `json:"name" validate:"required"`
	Qty        *int         `json:"qty"`
	Unit       string       `json:"unit"`
	Note       string       `json:"note"`
	Group      string       `json:"group"`
}

func (req *createProductRequest) Normalize() {
	req.Name = validators.SanitizeString(req.Name)
	req.Unit = validators.SanitizeString(req.Unit)
	req.Note = validators.SanitizeString(req.Note)
	req.Group = validators.SanitizeString(req.Group)
}

// updateProductRequest keeps track of which keys were sent. A null string clears the field.
type updateProductRequest struct {
	Name  types.Nullable[string] `json:"name"`
	Qty   types.Nullable[int]    `json:"qty"`
	Unit  types.Nullable[string] `json:"unit"`
	Note  types.Nullable[string] `json:"note"`
	Group types.Nullable[string] `json:"group"`
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input createProductRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	categoryID := uint(input.CategoryID)
	exists, err := h.categories.Exists(ctx, categoryID)
	if err != nil {
		responses.WriteError(ctx, h.logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to look up category"))
		return
	}
	if !exists {
		responses.WriteError(ctx, h.logg, w, pkgerrors.New(pkgerrors.CodeNotFound, models.ErrCategoryNotFound.Error()))
		return
	}

	product := &models.Product{
		CategoryID: categoryID,
		Name:       input.Name,
		Qty:        input.Qty,
		Unit:       input.Unit,
		Note:       input.Note,
		Grp:        input.Group,
	}
	if err := h.repo.Create(ctx, product); err != nil {
		responses.WriteError(ctx, h.logg, w, mapRepoError(err, "failed to create product"))
		return
	}

	if h.logg != nil {
		h.logg.Info(h.logg.WithFields(ctx, map[string]any{"product_id": product.ID, "category_id": categoryID}), "product.created")
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, inventory.NewProduct(*product))
}

// HandleUpdate replaces the fields present in the body and keeps the others.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var input updateProductRequest
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	changes, err := input.changes()
	if err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	product, err := h.repo.Update(ctx, id, changes)
	if err != nil {
		responses.WriteError(ctx, h.logg, w, mapRepoError(err, "failed to update product"))
		return
	}
	responses.WriteSuccess(w, inventory.NewProduct(*product))
}

func (req updateProductRequest) changes() (models.ProductChanges, error) {
	changes := models.ProductChanges{
		Qty:  req.Qty,
		Unit: trimmedOrCleared(req.Unit),
		Note: trimmedOrCleared(req.Note),
		Grp:  trimmedOrCleared(req.Group),
	}
	if req.Name.Present {
		name := validators.SanitizeString(req.Name.Or(""))
		if name == "" {
			return changes, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		changes.Name = &name
	}
	return changes, nil
}

func trimmedOrCleared(field types.Nullable[string]) *string {
	if !field.Present {
		return nil
	}
	value := validators.SanitizeString(field.Or(""))
	return &value
}

// HandleDelete removes a product. Unknown ids still succeed.
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.repo.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		responses.WriteError(ctx, h.logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to delete product"))
		return
	}
	responses.WriteSuccess(w, responses.SuccessBody{Success: true})
}

func mapRepoError(err error, internalMsg string) error {
	switch {
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrCategoryNotFound):
		return pkgerrors.New(pkgerrors.CodeNotFound, err.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, internalMsg)
}
