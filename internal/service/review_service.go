package service

import (
	"context"
	"errors"
	"time"

	"graceshopper/internal/domain"
	"graceshopper/internal/repository"

	"github.com/google/uuid"
)

// ErrInvalidStars rejects ratings outside the [0, 5] range.
var ErrInvalidStars = errors.New("stars must be between 0 and 5")

// CreateReviewInput carries the fields accepted when posting a review
type CreateReviewInput struct {
	Title     string
	Content   string
	Stars     int
	ProductID uuid.UUID
}

// ReviewService defines the interface for review business logic
type ReviewService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Create posts a review against an existing product
func (s *reviewService) Create(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*domain.Review, error) {
	if input.Stars < 0 || input.Stars > 5 {
		return nil, ErrInvalidStars
	}

	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:        uuid.New(),
		Title:     input.Title,
		Content:   input.Content,
		Stars:     input.Stars,
		UserID:    userID,
		ProductID: input.ProductID,
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// ListByProduct retrieves the reviews for an existing product
func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByProduct(ctx, productID)
}
