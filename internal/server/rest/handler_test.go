package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elizavetaa0/web-larek-frontend/internal/domain"
	"github.com/elizavetaa0/web-larek-frontend/internal/server/storage"
)

func price(v float64) *float64 { return &v }

// RepoMock implements storage.RepoInterface for testing
type RepoMock struct {
	products []domain.Product
	result   *domain.OrderResult
	err      error
}

func (m *RepoMock) GetAllProducts(context.Context) ([]domain.Product, error) {
	return m.products, m.err
}

func (m *RepoMock) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, storage.ErrProductNotFound
}

func (m *RepoMock) CreateOrder(context.Context, domain.OrderSnapshot) (*domain.OrderResult, error) {
	return m.result, m.err
}

func (m *RepoMock) Close() error { return nil }

func (m *RepoMock) RunMigrations(string) error { return nil }

func serve(t *testing.T, mock *RepoMock, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	router := NewRouter(NewHandler(mock, zap.NewNop()), 5*time.Second)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListProducts_ReturnsEnvelope(t *testing.T) {
	mock := &RepoMock{products: []domain.Product{
		{ID: "p1", Title: "one", Category: "c", Image: "/one.svg", Price: price(100)},
		{ID: "p2", Title: "two", Category: "c", Image: "/two.svg"},
	}}

	rec := serve(t, mock, http.MethodGet, "/api/product", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ProductListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Nil(t, resp.Items[1].Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	mock := &RepoMock{}

	rec := serve(t, mock, http.MethodGet, "/api/product/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_Success(t *testing.T) {
	mock := &RepoMock{result: &domain.OrderResult{ID: "ord1", Total: 500}}

	rec := serve(t, mock, http.MethodPost, "/api/order", domain.OrderSnapshot{
		Payment: "online",
		Address: "101000, Moscow",
		Email:   "a@b.co",
		Phone:   "+7 (999) 123-45-67",
		Items:   []string{"p1"},
		Total:   500,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var result domain.OrderResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "ord1", result.ID)
}

func TestCreateOrder_EmptyItemsRejected(t *testing.T) {
	mock := &RepoMock{result: &domain.OrderResult{ID: "ord1"}}

	rec := serve(t, mock, http.MethodPost, "/api/order", domain.OrderSnapshot{
		Payment: "online",
		Address: "101000, Moscow",
		Email:   "a@b.co",
		Phone:   "+7 (999) 123-45-67",
		Total:   500,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "empty_items", resp.Code)
}

func TestCreateOrder_TotalMismatch(t *testing.T) {
	mock := &RepoMock{err: storage.ErrTotalMismatch}

	rec := serve(t, mock, http.MethodPost, "/api/order", domain.OrderSnapshot{
		Payment: "online",
		Address: "101000, Moscow",
		Email:   "a@b.co",
		Phone:   "+7 (999) 123-45-67",
		Items:   []string{"p1"},
		Total:   1,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "total_mismatch", resp.Code)
}

func TestCreateOrder_RepositoryError(t *testing.T) {
	mock := &RepoMock{err: errors.New("database gone")}

	rec := serve(t, mock, http.MethodPost, "/api/order", domain.OrderSnapshot{
		Payment: "online",
		Address: "101000, Moscow",
		Email:   "a@b.co",
		Phone:   "+7 (999) 123-45-67",
		Items:   []string{"p1"},
		Total:   500,
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCreateOrder_InvalidBody(t *testing.T) {
	mock := &RepoMock{}

	router := NewRouter(NewHandler(mock, zap.NewNop()), 5*time.Second)
	req := httptest.NewRequest(http.MethodPost, "/api/order", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
