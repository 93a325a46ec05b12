package transport

import (
	"encoding/json"
	"net/http"

	"graceshopper/internal/middleware"
	"graceshopper/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	ImageURL  string `json:"image_url"`
}

// LoginRequest represents the login request payload. Missing fields are the
// service's concern so they surface as MissingCredentialsError, not as a
// generic validation failure.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest lists every recognized field of an admin user update;
// omitted fields keep their stored values.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	ImageURL  *string `json:"image_url"`
	IsAdmin   *bool   `json:"is_admin"`
}

// AuthResponse is the register/login response body
type AuthResponse struct {
	Message string      `json:"message"`
	User    interface{} `json:"user"`
	Token   string      `json:"token"`
}

// UserHandler handles HTTP requests for user and auth operations
type UserHandler struct {
	authService service.AuthService
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService service.AuthService, userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router, requireUser, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		// Public routes
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/me", h.Me)
			r.Get("/{userID}/reviews", h.ListReviews)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(requireUser, requireAdmin)
			r.Get("/", h.List)
			r.Get("/{userID}/orders", h.ListOrders)
			r.Patch("/{userID}", h.Update)
			r.Delete("/{userID}", h.Delete)
		})
	})
}

// Register handles user registration
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))
		decodeError(w, err)
		return
	}

	user, token, err := h.authService.Register(r.Context(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		middleware.RecordShopOperation("register", false)
		writeError(w, h.logger, err)
		return
	}

	middleware.RecordShopOperation("register", true)
	h.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, AuthResponse{
		Message: "thank you for signing up",
		User:    user,
		Token:   token,
	})
}

// Login handles user authentication
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		middleware.RecordShopOperation("login", false)
		writeError(w, h.logger, err)
		return
	}

	middleware.RecordShopOperation("login", true)
	h.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, AuthResponse{
		Message: "you're logged in!",
		User:    user,
		Token:   token,
	})
}

// Me returns the authenticated user's profile with orders, cart, and reviews
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, middleware.NameUnauthorized, "unauthorized")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, profile)
}

// List returns all users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, users)
}

// ListOrders returns any user's orders
func (h *UserHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid user ID")
		return
	}

	orders, err := h.userService.ListOrders(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// ListReviews returns the reviews written by a user
func (h *UserHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid user ID")
		return
	}

	reviews, err := h.userService.ListReviews(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}

// Update applies a partial update to any user
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		decodeError(w, err)
		return
	}

	user, err := h.userService.Update(r.Context(), userID, service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		ImageURL:  req.ImageURL,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("User updated", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// Delete removes a user and returns the deleted record
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.NameValidation, "invalid user ID")
		return
	}

	user, err := h.userService.Delete(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info("User deleted", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, user)
}
