package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/elizavetaa0/web-larek-frontend/internal/domain"
	"github.com/elizavetaa0/web-larek-frontend/internal/server/storage"
)

// Handler serves the storefront REST API: the product catalog and
// order submission.
type Handler struct {
	repo storage.RepoInterface
	log  *zap.Logger
}

func NewHandler(repo storage.RepoInterface, log *zap.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

type ProductListResponse struct {
	Total int              `json:"total"`
	Items []domain.Product `json:"items"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetAllProducts(r.Context())
	if err != nil {
		h.log.Error("listing products", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "failed to load catalog")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, ProductListResponse{Total: len(products), Items: products})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.repo.GetProduct(r.Context(), id)
	if errors.Is(err, storage.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		h.log.Error("loading product", zap.String("id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "failed to load product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var snapshot domain.OrderSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if code, msg := validateOrder(snapshot); code != "" {
		respondError(w, http.StatusBadRequest, code, msg)
		return
	}

	result, err := h.repo.CreateOrder(r.Context(), snapshot)
	switch {
	case errors.Is(err, storage.ErrUnknownProduct):
		respondError(w, http.StatusBadRequest, "unknown_product", "order references an unknown or unavailable product")
		return
	case errors.Is(err, storage.ErrTotalMismatch):
		respondError(w, http.StatusBadRequest, "total_mismatch", "total does not match item prices")
		return
	case err != nil:
		h.log.Error("creating order", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", "failed to create order")
		return
	}

	h.log.Info("order created",
		zap.String("order_id", result.ID),
		zap.Float64("total", result.Total),
		zap.Int("items", len(snapshot.Items)))
	respondJSON(w, http.StatusCreated, result)
}

func validateOrder(s domain.OrderSnapshot) (code, msg string) {
	switch {
	case len(s.Items) == 0:
		return "empty_items", "order must contain at least one item"
	case s.Payment == "":
		return "missing_payment", "payment method is required"
	case s.Address == "":
		return "missing_address", "address is required"
	case s.Email == "":
		return "missing_email", "email is required"
	case s.Phone == "":
		return "missing_phone", "phone is required"
	case s.Total <= 0:
		return "invalid_total", "total must be positive"
	}
	return "", ""
}
