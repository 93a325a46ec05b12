package transport

import (
	"net/http"

	"graceshopper/internal/middleware"
	"graceshopper/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UpdateOrderProductRequest carries the new price and quantity for a line
// item. Both fields must be sent; an omitted one is a validation failure,
// not a keep-current-value.
type UpdateOrderProductRequest struct {
	Price    *decimal.Decimal `json:"price" validate:"required"`
	Quantity *int             `json:"quantity" validate:"required,gte=0"`
}

// DeleteOrderProductResponse is the delete response: a success flag plus
// the removed row's fields.
type DeleteOrderProductResponse struct {
	Success   bool            `json:"success"`
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// OrderProductHandler handles HTTP requests for order line items
type OrderProductHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderProductHandler creates a new OrderProductHandler
func NewOrderProductHandler(orderService service.OrderService, logger *zap.Logger) *OrderProductHandler {
	return &OrderProductHandler{orderService: orderService, logger: logger}
}

// RegisterRoutes registers all order product routes
func (h *OrderProductHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.Route("/api/order_products", func(r chi.Router) {
		r.Use(requireUser)
		r.Patch("/{orderProductID}", h.Update)
		r.Delete("/{orderProductID}", h.Delete)
	})
}

// Update rewrites a line item's price and quantity
func (h *OrderProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orderProductID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid order product ID")
		return
	}

	req, ok := requesterFrom(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, middleware.NameUnauthorized, "unauthorized")
		return
	}

	var body UpdateOrderProductRequest
	if err := middleware.DecodeAndValidate(r, &body); err != nil {
		decodeError(w, err)
		return
	}

	item, err := h.orderService.UpdateOrderProduct(r.Context(), id, service.UpdateOrderProductInput{
		Price:    *body.Price,
		Quantity: *body.Quantity,
	}, req)
	if err != nil {
		middleware.RecordShopOperation("update_order_product", false)
		writeError(w, h.logger, err)
		return
	}

	middleware.RecordShopOperation("update_order_product", true)
	middleware.RespondWithJSON(w, http.StatusOK, item)
}

// Delete removes a line item and returns the deleted row
func (h *OrderProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orderProductID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid order product ID")
		return
	}

	req, ok := requesterFrom(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, middleware.NameUnauthorized, "unauthorized")
		return
	}

	item, err := h.orderService.DeleteOrderProduct(r.Context(), id, req)
	if err != nil {
		middleware.RecordShopOperation("delete_order_product", false)
		writeError(w, h.logger, err)
		return
	}

	middleware.RecordShopOperation("delete_order_product", true)
	middleware.RespondWithJSON(w, http.StatusOK, DeleteOrderProductResponse{
		Success:   true,
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Price:     item.Price,
		Quantity:  item.Quantity,
	})
}
