package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mytheresa/stock-tracker/app/inventory"
	"github.com/mytheresa/stock-tracker/pkg/colors"
	"github.com/mytheresa/stock-tracker/pkg/config"
	"github.com/mytheresa/stock-tracker/pkg/db"
	"github.com/mytheresa/stock-tracker/pkg/logger"
	"github.com/mytheresa/stock-tracker/pkg/migrate"
)

type testServer struct {
	t      *testing.T
	router http.Handler
	conn   *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(db.SQLiteDSN("file::memory:")), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrate.Up(context.Background(), sqlDB, config.DriverSQLite, logger.Nop()))

	cfg := &config.Config{
		HTTP:         config.HTTPConfig{CORSAllowedOrigins: []string{"*"}},
		FeatureFlags: config.FeatureFlagsConfig{MetricsEnabled: true},
	}
	reg := prometheus.NewRegistry()
	router := NewRouter(cfg, logger.Nop(), Deps{
		DB:          conn,
		Pinger:      db.NewFromGorm(conn, config.DriverSQLite),
		Registry:    reg,
		Gatherer:    reg,
		ColorSource: rand.New(rand.NewPCG(7, 7)),
	})
	return &testServer{t: t, router: router, conn: conn}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) data() []inventory.Category {
	s.t.Helper()
	rec := s.do("GET", "/api/data", "")
	require.Equal(s.t, http.StatusOK, rec.Code)
	var resp []inventory.Category
	require.NoError(s.t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func (s *testServer) createCategory(name string) inventory.Category {
	s.t.Helper()
	rec := s.do("POST", "/api/categories", fmt.Sprintf(`{"name":%q}`, name))
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp inventory.Category
	require.NoError(s.t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func (s *testServer) createProduct(body string) inventory.Product {
	s.t.Helper()
	rec := s.do("POST", "/api/products", body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp inventory.Product
	require.NoError(s.t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func (s *testServer) countRows(table string) int64 {
	s.t.Helper()
	var count int64
	require.NoError(s.t, s.conn.Table(table).Count(&count).Error)
	return count
}

func TestCategoryLifecycle(t *testing.T) {
	s := newTestServer(t)

	conserves := s.createCategory("Conserves")
	assert.Equal(t, "fa-solid fa-box", conserves.Icon)
	assert.True(t, colors.IsHex(conserves.Color))
	assert.Equal(t, 5, conserves.LowStockThreshold)

	bottes := s.createCategory("Bottes")

	board := s.data()
	require.Len(t, board, 2)
	assert.Equal(t, conserves.ID, board[0].ID)
	assert.Equal(t, bottes.ID, board[1].ID)

	rec := s.do("PUT", fmt.Sprintf("/api/categories/%d", bottes.ID), `{"icon":"fa-solid fa-socks"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fa-solid fa-socks", s.data()[1].Icon)
}

func TestCreateCategoryWithoutNamePersistsNothing(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{}`, `{"name":"   "}`, ``} {
		rec := s.do("POST", "/api/categories", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"name is required"}`, rec.Body.String())
	}
	assert.Zero(t, s.countRows("categories"))
}

func TestCreateCategoryDuplicateNameAnyCase(t *testing.T) {
	s := newTestServer(t)
	s.createCategory("Épices")

	for _, name := range []string{"Épices", "épices", "ÉPICES", "  épices  "} {
		rec := s.do("POST", "/api/categories", fmt.Sprintf(`{"name":%q}`, name))
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.JSONEq(t, `{"error":"category already exists"}`, rec.Body.String())
	}
	assert.Equal(t, int64(1), s.countRows("categories"))
}

func TestCreateCategoryRejectsBadColor(t *testing.T) {
	s := newTestServer(t)

	rec := s.do("POST", "/api/categories", `{"name":"Gants","color":"#GGGGGG"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, s.countRows("categories"))

	rec = s.do("POST", "/api/categories", `{"name":"Gants","color":"#a1B2c3"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateProductUnknownCategoryPersistsNothing(t *testing.T) {
	s := newTestServer(t)

	rec := s.do("POST", "/api/products", `{"category_id":999,"name":"Orphan"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"category not found"}`, rec.Body.String())

	rec = s.do("POST", "/api/products", `{"name":"Orphan"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Zero(t, s.countRows("products"))
}

func TestDeleteCategoryCascadesToProducts(t *testing.T) {
	s := newTestServer(t)
	a := s.createCategory("A")
	b := s.createCategory("B")
	first := s.createProduct(fmt.Sprintf(`{"category_id":%d,"name":"one","qty":1}`, a.ID))
	second := s.createProduct(fmt.Sprintf(`{"category_id":"%d","name":"two"}`, a.ID))
	kept := s.createProduct(fmt.Sprintf(`{"category_id":%d,"name":"kept"}`, b.ID))

	rec := s.do("DELETE", fmt.Sprintf("/api/categories/%d", a.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	board := s.data()
	require.Len(t, board, 1)
	assert.Equal(t, b.ID, board[0].ID)
	for _, c := range board {
		for _, p := range c.Products {
			assert.NotEqual(t, first.ID, p.ID)
			assert.NotEqual(t, second.ID, p.ID)
		}
	}
	assert.Equal(t, kept.ID, board[0].Products[0].ID)
	assert.Equal(t, int64(1), s.countRows("products"))

	// deleting again still succeeds
	rec = s.do("DELETE", fmt.Sprintf("/api/categories/%d", a.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPartialProductUpdate(t *testing.T) {
	s := newTestServer(t)
	c := s.createCategory("Sous-vides")
	p := s.createProduct(fmt.Sprintf(`{"category_id":%d,"name":"Gants M","qty":11,"unit":"boites","note":"reserve","group":"Gants"}`, c.ID))

	rec := s.do("PUT", "/api/products/"+p.ID, `{"qty":4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := s.data()[0].Products[0]
	assert.Equal(t, 4, *got.Qty)
	assert.Equal(t, "Gants M", got.Name)
	assert.Equal(t, "boites", got.Unit)
	assert.Equal(t, "reserve", *got.Note)
	assert.Equal(t, "Gants", *got.Group)

	rec = s.do("PUT", "/api/products/"+p.ID, `{"qty":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, s.data()[0].Products[0].Qty)

	rec = s.do("PUT", "/api/products/unknown1", `{"qty":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmptyNoteRoundTripsAsNull(t *testing.T) {
	s := newTestServer(t)
	c := s.createCategory("Sabots")
	created := s.createProduct(fmt.Sprintf(`{"category_id":%d,"name":"Sabots 37","qty":10,"unit":"paires","note":""}`, c.ID))
	assert.Nil(t, created.Note)

	rec := s.do("GET", "/api/data", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var raw []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	product := raw[0]["products"].([]any)[0].(map[string]any)
	assert.Contains(t, product, "note")
	assert.Nil(t, product["note"])
	assert.Nil(t, product["group"])
}

func TestThresholdAndAlerts(t *testing.T) {
	s := newTestServer(t)
	c := s.createCategory("Consommables")
	s.createProduct(fmt.Sprintf(`{"category_id":%d,"name":"Ficelle verte","qty":1}`, c.ID))
	s.createProduct(fmt.Sprintf(`{"category_id":%d,"name":"Papier WC","qty":86}`, c.ID))
	s.createProduct(fmt.Sprintf(`{"category_id":%d,"name":"Pics","note":"stock à vérifier"}`, c.ID))

	rec := s.do("PUT", fmt.Sprintf("/api/categories/%d/threshold", c.ID), `{"low_stock_threshold":100}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"low_stock_threshold":100}`, rec.Body.String())

	rec = s.do("GET", "/api/alerts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var alerts []inventory.Alert
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, 100, alerts[0].Threshold)
	assert.Len(t, alerts[0].Products, 3)

	rec = s.do("PUT", fmt.Sprintf("/api/categories/%d/threshold", c.ID), `{}`)
	assert.JSONEq(t, `{"success":true,"low_stock_threshold":5}`, rec.Body.String())
	rec = s.do("GET", "/api/alerts", "")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&alerts))
	require.Len(t, alerts, 1)
	assert.Len(t, alerts[0].Products, 2)

	rec = s.do("PUT", "/api/categories/9999/threshold", `{"low_stock_threshold":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do("PUT", "/api/categories/abc/threshold", `{"low_stock_threshold":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratedColorsAvoidExistingOnes(t *testing.T) {
	s := newTestServer(t)
	s.do("POST", "/api/categories", `{"name":"Rouge","color":"#c0574f"}`)
	generated := s.createCategory("Autre")

	red, err := colors.ToHSL("#c0574f")
	require.NoError(t, err)
	mine, err := colors.ToHSL(generated.Color)
	require.NoError(t, err)
	assert.Greater(t, colors.Distance(red, mine), 0.2)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do("GET", "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, s.do("GET", "/health/ready", "").Code)

	s.createCategory("Gants")
	rec := s.do("GET", "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `category_colors_generated_total 1`)
}

func TestUnknownRouteReturns404AndRequestID(t *testing.T) {
	s := newTestServer(t)
	rec := s.do("GET", "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
