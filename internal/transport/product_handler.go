package transport

import (
	"net/http"

	"graceshopper/internal/middleware"
	"graceshopper/internal/repository"
	"graceshopper/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	ImageURL    string          `json:"image_url"`
	InStock     bool            `json:"in_stock"`
	Category    string          `json:"category" validate:"required"`
}

// UpdateProductRequest lists every recognized field of a partial product
// update; omitted fields keep their stored values.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	InStock     *bool            `json:"in_stock"`
	Category    *string          `json:"category"`
}

// CreateReviewRequest represents the review creation payload
type CreateReviewRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Stars   int    `json:"stars" validate:"gte=0,lte=5"`
}

// ProductHandler handles HTTP requests for the catalog and its reviews
type ProductHandler struct {
	productService service.ProductService
	reviewService  service.ReviewService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, reviewService service.ReviewService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		reviewService:  reviewService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product and review routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, requireUser, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public routes
		r.Get("/", h.List)
		r.Get("/{productID}", h.Get)
		r.Get("/{productID}/reviews", h.ListReviews)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Post("/{productID}/reviews", h.CreateReview)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(requireUser, requireAdmin)
			r.Post("/", h.Create)
			r.Patch("/{productID}", h.Update)
			r.Delete("/{productID}", h.Delete)
		})
	})
}

// List returns the catalog, optionally filtered by category
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns a single product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid product ID")
		return
	}

	product, err := h.productService.GetByID(r.Context(), productID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create inserts a product. Duplicate names surface as a conflict with the
// catalog left unchanged.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		decodeError(w, err)
		return
	}

	product, err := h.productService.Create(r.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		InStock:     req.InStock,
		Category:    req.Category,
	})
	if err != nil {
		middleware.RecordShopOperation("create_product", false)
		writeError(w, h.logger, err)
		return
	}

	middleware.RecordShopOperation("create_product", true)
	h.logger.Info("Product created", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update applies a partial product update
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		decodeError(w, err)
		return
	}

	product, err := h.productService.Update(r.Context(), productID, repository.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		InStock:     req.InStock,
		Category:    req.Category,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid product ID")
		return
	}

	if err := h.productService.Delete(r.Context(), productID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListReviews returns the reviews for a product
func (h *ProductHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid product ID")
		return
	}

	reviews, err := h.reviewService.ListByProduct(r.Context(), productID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}

// CreateReview posts a review against a product
func (h *ProductHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid product ID")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, middleware.NameUnauthorized, "unauthorized")
		return
	}

	var req CreateReviewRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		decodeError(w, err)
		return
	}

	review, err := h.reviewService.Create(r.Context(), userID, service.CreateReviewInput{
		Title:     req.Title,
		Content:   req.Content,
		Stars:     req.Stars,
		ProductID: productID,
	})
	if err != nil {
		middleware.RecordShopOperation("create_review", false)
		writeError(w, h.logger, err)
		return
	}

	middleware.RecordShopOperation("create_review", true)
	middleware.RespondWithJSON(w, http.StatusCreated, review)
}
