package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketshoes/cart-service-go/internal/cart"
)

// CartManager is the contract the transport layer needs from the cart.
type CartManager interface {
	Items() []cart.Product
	AddProduct(ctx context.Context, productID string) error
	RemoveProduct(ctx context.Context, productID string) error
	UpdateProductAmount(ctx context.Context, productID string, amount int) error
}

type CartHandler struct {
	manager CartManager
}

func NewCartHandler(manager CartManager) *CartHandler {
	return &CartHandler{manager: manager}
}

func (h *CartHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "cart-service"})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.items())
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	if err := h.manager.AddProduct(r.Context(), req.ProductID); err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.items())
}

type updateItemRequest struct {
	Amount int `json:"amount"`
}

func (h *CartHandler) UpdateItemAmount(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.manager.UpdateProductAmount(r.Context(), productID, req.Amount); err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.items())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	if err := h.manager.RemoveProduct(r.Context(), productID); err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.items())
}

// items never returns nil so the response body is always a JSON array.
func (h *CartHandler) items() []cart.Product {
	items := h.manager.Items()
	if items == nil {
		items = []cart.Product{}
	}
	return items
}

func writeOpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, cart.ErrInvalidAmount.Error())
	case errors.Is(err, cart.ErrProductNotFound):
		writeError(w, http.StatusNotFound, cart.ErrProductNotFound.Error())
	case errors.Is(err, cart.ErrOutOfStock):
		writeError(w, http.StatusConflict, cart.ErrOutOfStock.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
