package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/repositories"
	"github.com/prasad217/Electric-Billing-system/internal/core/sessions"
	"github.com/prasad217/Electric-Billing-system/internal/pkg/password"

	"gorm.io/gorm"
)

// Account errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountService handles user and administrator accounts
type AccountService struct {
	userRepo     repositories.UserRepository
	adminRepo    repositories.AdminRepository
	sessionStore *sessions.Store
}

// NewAccountService creates a new account service
func NewAccountService(
	userRepo repositories.UserRepository,
	adminRepo repositories.AdminRepository,
	sessionStore *sessions.Store,
) *AccountService {
	return &AccountService{
		userRepo:     userRepo,
		adminRepo:    adminRepo,
		sessionStore: sessionStore,
	}
}

// RegisterUserInput represents user registration input
type RegisterUserInput struct {
	Name                   string
	Address                string
	PhoneNumber            string
	ElectricityBoardNumber string
	Email                  string
	Password               string
}

// RegisterUser hashes the password and persists a new user. A duplicate
// email fails at the store's unique index and propagates as a plain store
// error; the handler surfaces it as a generic 500. No identifier is
// returned to the caller.
func (s *AccountService) RegisterUser(ctx context.Context, input *RegisterUserInput) error {
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:                   input.Name,
		Address:                input.Address,
		PhoneNumber:            input.PhoneNumber,
		ElectricityBoardNumber: input.ElectricityBoardNumber,
		Email:                  input.Email,
		Password:               hashed,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ User registered: %s", user.Email)
	return nil
}

// RegisterAdmin persists an administrator from an open-ended field set and
// immediately establishes an admin session (registration implies login).
// Returns the session token.
func (s *AccountService) RegisterAdmin(ctx context.Context, fields map[string]interface{}) (string, error) {
	plain, ok := fields["password"].(string)
	if !ok || plain == "" {
		return "", fmt.Errorf("password field missing or not a string")
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return "", err
	}
	fields["password"] = hashed

	if err := s.adminRepo.CreateFromFields(ctx, fields); err != nil {
		return "", err
	}

	email, _ := fields["email"].(string)
	token, err := s.sessionStore.Create(ctx, sessions.Session{
		Role:  sessions.RoleAdmin,
		Email: email,
	})
	if err != nil {
		return "", err
	}

	log.Printf("✅ Administrator registered: %s", email)
	return token, nil
}

// LoginUser checks credentials and returns the user's identifier. Plain
// users get no session; they re-send the id on every request.
func (s *AccountService) LoginUser(ctx context.Context, email, plain string) (uint, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidCredentials
		}
		return 0, err
	}

	if !password.Verify(plain, user.Password) {
		return 0, ErrInvalidCredentials
	}

	log.Printf("✅ User logged in: %s", user.Email)
	return user.ID, nil
}

// LoginAdmin checks administrator credentials and establishes a session.
// Returns the session token.
func (s *AccountService) LoginAdmin(ctx context.Context, email, plain string) (string, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !password.Verify(plain, admin.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.sessionStore.Create(ctx, sessions.Session{
		Role:  sessions.RoleAdmin,
		Email: admin.Email,
	})
	if err != nil {
		return "", err
	}

	log.Printf("✅ Administrator logged in: %s", admin.Email)
	return token, nil
}

// ListUsers returns every user row
func (s *AccountService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}
