package service

import (
	"context"
	"errors"
	"fmt"

	"graceshopper/internal/domain"
	"graceshopper/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrForbidden marks an authenticated request whose identity does not own
// the resource it is asking for.
var ErrForbidden = errors.New("you do not have access to this resource")

// Profile is the /users/me aggregate: the user plus their order history,
// open cart, and authored reviews.
type Profile struct {
	User    *domain.User     `json:"user"`
	Orders  []*domain.Order  `json:"orders"`
	Cart    *domain.Order    `json:"cart"`
	Reviews []*domain.Review `json:"reviews"`
}

// UpdateUserInput lists the recognized fields of an admin user update.
// Nil means omitted. Password, when present, is re-hashed before storage.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Username  *string
	Password  *string
	ImageURL  *string
	IsAdmin   *bool
}

// UserService defines the interface for user business logic
type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	ListReviews(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	orderRepo  repository.OrderRepository
	reviewRepo repository.ReviewRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	reviewRepo repository.ReviewRepository,
) UserService {
	return &userService{
		userRepo:   userRepo,
		orderRepo:  orderRepo,
		reviewRepo: reviewRepo,
	}
}

// GetProfile aggregates the user record with their orders, cart, and reviews.
// A user with no open order gets a nil cart, not an error.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	cart, err := s.orderRepo.FindCartByUser(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	return &Profile{
		User:    user,
		Orders:  orders,
		Cart:    cart,
		Reviews: reviews,
	}, nil
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// ListOrders retrieves a user's orders, checking the user exists first
func (s *userService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListByUser(ctx, userID)
}

// ListReviews retrieves the reviews written by a user
func (s *userService) ListReviews(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByUser(ctx, userID)
}

// Update applies a partial user update. A supplied password must still meet
// the length rule and is hashed before it reaches the repository.
func (s *userService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	update := repository.UserUpdate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Username:  input.Username,
		ImageURL:  input.ImageURL,
		IsAdmin:   input.IsAdmin,
	}

	if input.Password != nil {
		if len(*input.Password) < MinPasswordLength {
			return nil, ErrShortPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}

	return s.userRepo.Update(ctx, userID, update)
}

// Delete removes a user and returns the deleted record
func (s *userService) Delete(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.Delete(ctx, userID)
}
