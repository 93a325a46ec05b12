package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"graceshopper/internal/domain"
	"graceshopper/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/crypto/bcrypt"
)

// Mock repositories for testing
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Username]; exists {
		return repository.ErrUserAlreadyExists
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrUserAlreadyExists
		}
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, exists := m.users[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *mockUserRepository) Update(ctx context.Context, id uuid.UUID, update repository.UserUpdate) (*domain.User, error) {
	user, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Username != nil {
		delete(m.users, user.Username)
		user.Username = *update.Username
		m.users[user.Username] = user
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.ImageURL != nil {
		user.ImageURL = *update.ImageURL
	}
	if update.IsAdmin != nil {
		user.IsAdmin = *update.IsAdmin
	}
	return user, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(m.users, user.Username)
	return user, nil
}

func TestProperty_RegistrationCreatesHashedPasswords(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("passwords are hashed with bcrypt and not stored as plaintext", prop.ForAll(
		func(username string, password string, firstName string, lastName string) bool {
			// Setup
			userRepo := newMockUserRepository()
			service := NewAuthService(userRepo, "test-secret", 7, 7)
			ctx := context.Background()

			// Execute registration
			user, _, err := service.Register(ctx, RegisterInput{
				FirstName: firstName,
				LastName:  lastName,
				Email:     username + "@example.com",
				Username:  username,
				Password:  password,
			})
			if err != nil {
				// If registration fails, skip this test case
				return true
			}

			// Verify password is hashed (not equal to plaintext)
			if user.PasswordHash == password {
				t.Logf("FAIL: Password stored as plaintext for username %s", username)
				return false
			}

			// Verify password hash is a valid bcrypt hash
			err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
			if err != nil {
				t.Logf("FAIL: Password hash is not a valid bcrypt hash or doesn't match: %v", err)
				return false
			}

			// Verify the stored user has the hashed password
			storedUser, err := userRepo.FindByUsername(ctx, username)
			if err != nil {
				t.Logf("FAIL: Could not find stored user: %v", err)
				return false
			}

			if storedUser.PasswordHash != user.PasswordHash {
				t.Logf("FAIL: Stored password hash doesn't match returned password hash")
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z]{3,12}`),
		// Generate passwords with at least 8 characters
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ShortPasswordsAlwaysRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("passwords of 7 characters or fewer fail with ErrShortPassword", prop.ForAll(
		func(username string, password string) bool {
			userRepo := newMockUserRepository()
			service := NewAuthService(userRepo, "test-secret", 7, 7)
			ctx := context.Background()

			user, token, err := service.Register(ctx, RegisterInput{
				FirstName: "Test",
				LastName:  "User",
				Email:     username + "@example.com",
				Username:  username,
				Password:  password,
			})
			if err != ErrShortPassword {
				t.Logf("FAIL: Expected ErrShortPassword for %q, got: %v", password, err)
				return false
			}
			if user != nil || token != "" {
				t.Logf("FAIL: Rejected registration must not return a user or token")
				return false
			}

			// Nothing may be stored for a failed registration
			if _, err := userRepo.FindByUsername(ctx, username); err != repository.ErrUserNotFound {
				t.Logf("FAIL: User was stored despite short password")
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z]{3,12}`),
		gen.RegexMatch(`[A-Za-z0-9]{0,7}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_DuplicateUsernameRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("registering the same username twice fails with ErrUserAlreadyExists", prop.ForAll(
		func(username string, password string) bool {
			userRepo := newMockUserRepository()
			service := NewAuthService(userRepo, "test-secret", 7, 7)
			ctx := context.Background()

			input := RegisterInput{
				FirstName: "Test",
				LastName:  "User",
				Email:     username + "@example.com",
				Username:  username,
				Password:  password,
			}

			if _, _, err := service.Register(ctx, input); err != nil {
				return true
			}

			input.Email = username + "@other.org"
			_, _, err := service.Register(ctx, input)
			if err != repository.ErrUserAlreadyExists {
				t.Logf("FAIL: Expected ErrUserAlreadyExists, got: %v", err)
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z]{3,12}`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_TokensCarryIdentityClaimsOnly(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("tokens contain id, username and admin flag but never password material", prop.ForAll(
		func(username string, password string, isAdmin bool) bool {
			// Setup
			userRepo := newMockUserRepository()
			service := NewAuthService(userRepo, "test-secret-key", 7, 7)
			ctx := context.Background()

			// Register user
			user, _, err := service.Register(ctx, RegisterInput{
				FirstName: "Test",
				LastName:  "User",
				Email:     username + "@example.com",
				Username:  username,
				Password:  password,
			})
			if err != nil {
				return true // Skip if registration fails
			}

			// Override admin flag for testing
			user.IsAdmin = isAdmin
			userRepo.users[username] = user

			// Login to get a token
			_, token, err := service.Login(ctx, username, password)
			if err != nil {
				t.Logf("FAIL: Login failed: %v", err)
				return false
			}

			// Validate and decode the token
			claims, err := service.ValidateToken(token)
			if err != nil {
				t.Logf("FAIL: Token validation failed: %v", err)
				return false
			}

			if claims.UserID != user.ID {
				t.Logf("FAIL: User ID claim mismatch. Expected %s, got %s", user.ID, claims.UserID)
				return false
			}

			if claims.Username != username {
				t.Logf("FAIL: Username claim mismatch. Expected %s, got %s", username, claims.Username)
				return false
			}

			if claims.IsAdmin != isAdmin {
				t.Logf("FAIL: Admin claim mismatch. Expected %v, got %v", isAdmin, claims.IsAdmin)
				return false
			}

			// Verify token has expiration and issue time
			if claims.ExpiresAt == nil {
				t.Logf("FAIL: Token missing expiration claim")
				return false
			}
			if claims.IssuedAt == nil {
				t.Logf("FAIL: Token missing issued at claim")
				return false
			}
			if time.Now().After(claims.ExpiresAt.Time) {
				t.Logf("FAIL: Token is already expired")
				return false
			}

			// The encoded payload must not leak the hash
			if strings.Contains(token, user.PasswordHash) {
				t.Logf("FAIL: Token embeds password hash")
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z]{3,12}`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_LoginRejectsBadCredentials(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("wrong password and unknown username fail with ErrInvalidCredentials", prop.ForAll(
		func(username string, password string, wrongPassword string) bool {
			if password == wrongPassword {
				return true
			}

			userRepo := newMockUserRepository()
			service := NewAuthService(userRepo, "test-secret", 7, 7)
			ctx := context.Background()

			if _, _, err := service.Register(ctx, RegisterInput{
				FirstName: "Test",
				LastName:  "User",
				Email:     username + "@example.com",
				Username:  username,
				Password:  password,
			}); err != nil {
				return true
			}

			if _, _, err := service.Login(ctx, username, wrongPassword); err != ErrInvalidCredentials {
				t.Logf("FAIL: Expected ErrInvalidCredentials for wrong password, got: %v", err)
				return false
			}

			if _, _, err := service.Login(ctx, "no-such-"+username, password); err != ErrInvalidCredentials {
				t.Logf("FAIL: Expected ErrInvalidCredentials for unknown username, got: %v", err)
				return false
			}

			return true
		},
		gen.RegexMatch(`[a-z]{3,12}`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLoginMissingCredentials(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewAuthService(userRepo, "test-secret", 7, 7)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"missing both", "", ""},
		{"missing password", "albert", ""},
		{"missing username", "", "bertie99"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := service.Login(ctx, tc.username, tc.password)
			if err != ErrMissingCredentials {
				t.Errorf("expected ErrMissingCredentials, got: %v", err)
			}
		})
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewAuthService(userRepo, "secret-a", 7, 7)
	ctx := context.Background()

	_, token, err := service.Register(ctx, RegisterInput{
		FirstName: "Al",
		LastName:  "Bert",
		Email:     "albert@bert.org",
		Username:  "albert",
		Password:  "bertie99",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	other := NewAuthService(newMockUserRepository(), "secret-b", 7, 7)
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different signing secret")
	}
}
