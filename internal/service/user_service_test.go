package service

import (
	"context"
	"testing"

	"graceshopper/internal/domain"
	"graceshopper/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func newUserServiceForTest() (UserService, *mockUserRepository, *mockOrderRepository, *mockReviewRepository) {
	userRepo := newMockUserRepository()
	orderRepo := newMockOrderRepository(newMockOrderProductRepository())
	reviewRepo := newMockReviewRepository()
	return NewUserService(userRepo, orderRepo, reviewRepo), userRepo, orderRepo, reviewRepo
}

func storeUserForTest(userRepo *mockUserRepository, username string) *domain.User {
	user := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
	}
	userRepo.users[username] = user
	return user
}

func TestGetProfileAggregatesUserData(t *testing.T) {
	service, userRepo, orderRepo, reviewRepo := newUserServiceForTest()
	ctx := context.Background()

	user := storeUserForTest(userRepo, "albert")

	cart := &domain.Order{ID: uuid.New(), Status: domain.StatusCreated, UserID: user.ID}
	done := &domain.Order{ID: uuid.New(), Status: domain.StatusCompleted, UserID: user.ID}
	orderRepo.orders[cart.ID] = cart
	orderRepo.orders[done.ID] = done

	item := &domain.OrderProduct{
		ID:        uuid.New(),
		OrderID:   cart.ID,
		ProductID: uuid.New(),
		Price:     decimal.NewFromInt(100),
		Quantity:  2,
	}
	orderRepo.items.items[item.ID] = item

	review := &domain.Review{ID: uuid.New(), Title: "Best towels ever", Stars: 5, UserID: user.ID, ProductID: uuid.New()}
	reviewRepo.reviews[review.ID] = review

	profile, err := service.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}

	if profile.User.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, profile.User.ID)
	}
	if len(profile.Orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(profile.Orders))
	}
	if profile.Cart == nil || profile.Cart.ID != cart.ID {
		t.Errorf("expected cart %s, got %+v", cart.ID, profile.Cart)
	}
	if profile.Cart != nil && (len(profile.Cart.Items) != 1 || !profile.Cart.Items[0].Price.Equal(item.Price)) {
		t.Errorf("expected the cart's line item on the profile, got %+v", profile.Cart.Items)
	}
	if len(profile.Reviews) != 1 {
		t.Errorf("expected 1 review, got %d", len(profile.Reviews))
	}
}

func TestGetProfileWithoutCart(t *testing.T) {
	service, userRepo, _, _ := newUserServiceForTest()
	ctx := context.Background()

	user := storeUserForTest(userRepo, "sandra")

	profile, err := service.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.Cart != nil {
		t.Errorf("expected nil cart for a user with no open order, got %+v", profile.Cart)
	}
	if profile.Orders == nil && len(profile.Orders) != 0 {
		t.Errorf("expected empty order history")
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	service, _, _, _ := newUserServiceForTest()
	if _, err := service.GetProfile(context.Background(), uuid.New()); err != repository.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListOrdersChecksUserExists(t *testing.T) {
	service, userRepo, orderRepo, _ := newUserServiceForTest()
	ctx := context.Background()

	user := storeUserForTest(userRepo, "glamgal")
	order := &domain.Order{ID: uuid.New(), Status: domain.StatusCompleted, UserID: user.ID}
	orderRepo.orders[order.ID] = order

	orders, err := service.ListOrders(ctx, user.ID)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("expected 1 order, got %d", len(orders))
	}

	if _, err := service.ListOrders(ctx, uuid.New()); err != repository.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound for unknown user, got %v", err)
	}
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	service, userRepo, _, _ := newUserServiceForTest()
	ctx := context.Background()

	user := storeUserForTest(userRepo, "albert")

	password := "bertie99-new"
	updated, err := service.Update(ctx, user.ID, UpdateUserInput{Password: &password})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.PasswordHash == password {
		t.Error("password stored as plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(password)); err != nil {
		t.Errorf("stored hash does not match the new password: %v", err)
	}
}

func TestUpdateUserShortPasswordRejected(t *testing.T) {
	service, userRepo, _, _ := newUserServiceForTest()
	ctx := context.Background()

	user := storeUserForTest(userRepo, "albert")

	short := "short"
	if _, err := service.Update(ctx, user.ID, UpdateUserInput{Password: &short}); err != ErrShortPassword {
		t.Errorf("expected ErrShortPassword, got %v", err)
	}
}

func TestUpdateUserPartialFields(t *testing.T) {
	service, userRepo, _, _ := newUserServiceForTest()
	ctx := context.Background()

	user := storeUserForTest(userRepo, "timo")
	user.FirstName = "Tim"
	user.LastName = "Galvez"

	isAdmin := true
	updated, err := service.Update(ctx, user.ID, UpdateUserInput{IsAdmin: &isAdmin})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if !updated.IsAdmin {
		t.Error("expected admin flag to be set")
	}
	if updated.FirstName != "Tim" || updated.LastName != "Galvez" {
		t.Errorf("omitted fields changed: %+v", updated)
	}
}

func TestDeleteUserReturnsDeletedRecord(t *testing.T) {
	service, userRepo, _, _ := newUserServiceForTest()
	ctx := context.Background()

	user := storeUserForTest(userRepo, "overlord")

	deleted, err := service.Delete(ctx, user.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != user.ID {
		t.Errorf("expected deleted user %s, got %s", user.ID, deleted.ID)
	}
	if _, err := service.GetByID(ctx, user.ID); err != repository.ErrUserNotFound {
		t.Errorf("user still present after delete: %v", err)
	}

	if _, err := service.Delete(ctx, uuid.New()); err != repository.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound for unknown user, got %v", err)
	}
}
