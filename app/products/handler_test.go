package products

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mytheresa/stock-tracker/app/inventory"
	"github.com/mytheresa/stock-tracker/models"
	"github.com/mytheresa/stock-tracker/pkg/logger"
	"github.com/stretchr/testify/assert"
)

// --- Mock Repositories ---

type MockProductRepo struct {
	Products  map[string]models.Product
	CreateErr error
	DeleteErr error

	LastCreated  *models.Product
	LastChanges  *models.ProductChanges
	lastCalledID string
	createCalls  int
}

func (m *MockProductRepo) Create(ctx context.Context, product *models.Product) error {
	m.createCalls++
	m.LastCreated = product
	if m.CreateErr != nil {
		return m.CreateErr
	}
	product.ID = "ab12cd34"
	return nil
}

func (m *MockProductRepo) Update(ctx context.Context, id string, changes models.ProductChanges) (*models.Product, error) {
	m.lastCalledID = id
	m.LastChanges = &changes
	p, ok := m.Products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	if changes.Name != nil {
		p.Name = *changes.Name
	}
	if changes.Qty.Present {
		p.Qty = changes.Qty.Value
	}
	if changes.Unit != nil {
		p.Unit = *changes.Unit
	}
	if changes.Note != nil {
		p.Note = *changes.Note
	}
	if changes.Grp != nil {
		p.Grp = *changes.Grp
	}
	return &p, nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id string) error {
	m.lastCalledID = id
	return m.DeleteErr
}

type MockCategoryLookup struct {
	IDs       map[uint]bool
	Err       error
	lastAsked uint
}

func (m *MockCategoryLookup) Exists(ctx context.Context, id uint) (bool, error) {
	m.lastAsked = id
	if m.Err != nil {
		return false, m.Err
	}
	return m.IDs[id], nil
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func intPtr(v int) *int { return &v }

// --- Tests: POST /api/products ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		mockRepoSetup      func() (*MockProductRepo, *MockCategoryLookup)
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockProductRepo, lookup *MockCategoryLookup)
	}{
		{
			name: "Success with all fields trimmed",
			body: `{"category_id":2,"name":" Gants S ","qty":5,"unit":" boites ","note":" ","group":"Gants"}`,
			mockRepoSetup: func() (*MockProductRepo, *MockCategoryLookup) {
				return &MockProductRepo{}, &MockCategoryLookup{IDs: map[uint]bool{2: true}}
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"id":"ab12cd34","name":"Gants S","qty":5,"unit":"boites","note":null,"group":"Gants"}`, rec.Body.String())
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo, lookup *MockCategoryLookup) {
				assert.Equal(t, uint(2), repo.LastCreated.CategoryID)
				assert.Equal(t, "", repo.LastCreated.Note)
				assert.Equal(t, "Gants", repo.LastCreated.Grp)
			},
		},
		{
			name: "Category id sent as a string, qty omitted",
			body: `{"category_id":"2","name":"Gants XL"}`,
			mockRepoSetup: func() (*MockProductRepo, *MockCategoryLookup) {
				return &MockProductRepo{}, &MockCategoryLookup{IDs: map[uint]bool{2: true}}
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp inventory.Product
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Nil(t, resp.Qty)
				assert.Equal(t, "", resp.Unit)
				assert.Nil(t, resp.Note)
				assert.Nil(t, resp.Group)
			},
		},
		{
			name: "Missing name",
			body: `{"category_id":2}`,
			mockRepoSetup: func() (*MockProductRepo, *MockCategoryLookup) {
				return &MockProductRepo{}, &MockCategoryLookup{IDs: map[uint]bool{2: true}}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"name is required"}`, rec.Body.String())
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo, lookup *MockCategoryLookup) {
				assert.Zero(t, repo.createCalls)
			},
		},
		{
			name: "Missing category",
			body: `{"name":"Gants"}`,
			mockRepoSetup: func() (*MockProductRepo, *MockCategoryLookup) {
				return &MockProductRepo{}, &MockCategoryLookup{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"category_id is required"}`, rec.Body.String())
			},
		},
		{
			name: "Unknown category",
			body: `{"category_id":42,"name":"Gants"}`,
			mockRepoSetup: func() (*MockProductRepo, *MockCategoryLookup) {
				return &MockProductRepo{}, &MockCategoryLookup{IDs: map[uint]bool{2: true}}
			},
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"category not found"}`, rec.Body.String())
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo, lookup *MockCategoryLookup) {
				assert.Equal(t, uint(42), lookup.lastAsked)
				assert.Zero(t, repo.createCalls)
			},
		},
		{
			name: "Category removed between lookup and insert",
			body: `{"category_id":2,"name":"Gants"}`,
			mockRepoSetup: func() (*MockProductRepo, *MockCategoryLookup) {
				return &MockProductRepo{CreateErr: models.ErrCategoryNotFound}, &MockCategoryLookup{IDs: map[uint]bool{2: true}}
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name: "Lookup error",
			body: `{"category_id":2,"name":"Gants"}`,
			mockRepoSetup: func() (*MockProductRepo, *MockCategoryLookup) {
				return &MockProductRepo{}, &MockCategoryLookup{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
		{
			name: "Repository error",
			body: `{"category_id":2,"name":"Gants"}`,
			mockRepoSetup: func() (*MockProductRepo, *MockCategoryLookup) {
				return &MockProductRepo{CreateErr: errors.New("disk full")}, &MockCategoryLookup{IDs: map[uint]bool{2: true}}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo, lookup := tc.mockRepoSetup()
			handler := NewProductHandler(mockRepo, lookup, logger.Nop())
			req := httptest.NewRequest("POST", "/api/products", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo, lookup)
			}
		})
	}
}

// --- Tests: PUT /api/products/{id} ---

func TestHandleUpdate(t *testing.T) {
	stored := func() map[string]models.Product {
		return map[string]models.Product{
			"sv19": {ID: "sv19", CategoryID: 2, Name: "Gants M", Qty: intPtr(11), Unit: "boites", Note: "reserve", Grp: "Gants"},
		}
	}

	testCases := []struct {
		name               string
		productID          string
		body               string
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name:               "Only qty keeps the other fields",
			productID:          "sv19",
			body:               `{"qty":3}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"id":"sv19","name":"Gants M","qty":3,"unit":"boites","note":"reserve","group":"Gants"}`, rec.Body.String())
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "sv19", repo.lastCalledID)
				assert.Nil(t, repo.LastChanges.Name)
				assert.Nil(t, repo.LastChanges.Unit)
				assert.Nil(t, repo.LastChanges.Note)
				assert.Nil(t, repo.LastChanges.Grp)
			},
		},
		{
			name:               "Null qty makes it unknown",
			productID:          "sv19",
			body:               `{"qty":null}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp inventory.Product
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Nil(t, resp.Qty)
				assert.Equal(t, "Gants M", resp.Name)
			},
		},
		{
			name:               "Strings are trimmed and empty note is null",
			productID:          "sv19",
			body:               `{"name":"  Gants L ","note":"   ","group":null}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"id":"sv19","name":"Gants L","qty":11,"unit":"boites","note":null,"group":null}`, rec.Body.String())
			},
		},
		{
			name:               "Blank name is rejected",
			productID:          "sv19",
			body:               `{"name":"  "}`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"name is required"}`, rec.Body.String())
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.LastChanges)
			},
		},
		{
			name:               "Unknown product",
			productID:          "nope0000",
			body:               `{"qty":1}`,
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `{"error":"product not found"}`, rec.Body.String())
			},
		},
		{
			name:               "Malformed qty",
			productID:          "sv19",
			body:               `{"qty":"many"}`,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := &MockProductRepo{Products: stored()}
			handler := NewProductHandler(mockRepo, &MockCategoryLookup{}, logger.Nop())
			req := withURLParam(httptest.NewRequest("PUT", "/api/products/"+tc.productID, strings.NewReader(tc.body)), "id", tc.productID)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleUpdate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: DELETE /api/products/{id} ---

func TestHandleDelete(t *testing.T) {
	testCases := []struct {
		name               string
		deleteErr          error
		expectedStatusCode int
		expectedBody       string
	}{
		{"Success", nil, http.StatusOK, `{"success":true}`},
		{"Repository error", errors.New("locked"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &MockProductRepo{DeleteErr: tc.deleteErr}
			handler := NewProductHandler(mockRepo, &MockCategoryLookup{}, logger.Nop())
			req := withURLParam(httptest.NewRequest("DELETE", "/api/products/c01", nil), "id", "c01")
			rec := httptest.NewRecorder()

			handler.HandleDelete(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			assert.Equal(t, "c01", mockRepo.lastCalledID)
		})
	}
}
