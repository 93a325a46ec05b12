package transport

import (
	"net/http"

	"graceshopper/internal/domain"
	"graceshopper/internal/middleware"
	"graceshopper/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AddProductRequest represents the add-to-order payload. Price is optional:
// when omitted, the product's current catalog price is snapshotted.
type AddProductRequest struct {
	ProductID uuid.UUID        `json:"product_id" validate:"required"`
	Price     *decimal.Decimal `json:"price"`
	Quantity  int              `json:"quantity" validate:"gte=0"`
}

// UpdateOrderStatusRequest carries the requested status transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, requireUser, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/", h.CreateCart)
			r.Get("/{orderID}", h.Get)
			r.Patch("/{orderID}", h.UpdateStatus)
			r.Post("/{orderID}/products", h.AddProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireUser, requireAdmin)
			r.Get("/", h.List)
		})
	})
}

// CreateCart returns the caller's open order, creating one if none exists
func (h *OrderHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	req, ok := requesterFrom(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, middleware.NameUnauthorized, "unauthorized")
		return
	}

	order, err := h.orderService.GetOrCreateCart(r.Context(), req.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Get returns an order to its owner or an admin
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid order ID")
		return
	}

	req, ok := requesterFrom(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, middleware.NameUnauthorized, "unauthorized")
		return
	}

	order, err := h.orderService.Get(r.Context(), orderID, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// List returns every order
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// UpdateStatus moves an order through the status machine
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid order ID")
		return
	}

	req, ok := requesterFrom(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, middleware.NameUnauthorized, "unauthorized")
		return
	}

	var body UpdateOrderStatusRequest
	if err := middleware.DecodeAndValidate(r, &body); err != nil {
		decodeError(w, err)
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), orderID, domain.OrderStatus(body.Status), req)
	if err != nil {
		middleware.RecordShopOperation("order_status", false)
		writeError(w, h.logger, err)
		return
	}

	middleware.RecordShopOperation("order_status", true)
	h.logger.Info("Order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// AddProduct inserts a line item with a price snapshot into an order
func (h *OrderHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid order ID")
		return
	}

	req, ok := requesterFrom(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, middleware.NameUnauthorized, "unauthorized")
		return
	}

	var body AddProductRequest
	if err := middleware.DecodeAndValidate(r, &body); err != nil {
		decodeError(w, err)
		return
	}

	item, err := h.orderService.AddProduct(r.Context(), orderID, service.AddProductInput{
		ProductID: body.ProductID,
		Price:     body.Price,
		Quantity:  body.Quantity,
	}, req)
	if err != nil {
		middleware.RecordShopOperation("add_to_order", false)
		writeError(w, h.logger, err)
		return
	}

	middleware.RecordShopOperation("add_to_order", true)
	middleware.RespondWithJSON(w, http.StatusCreated, item)
}
