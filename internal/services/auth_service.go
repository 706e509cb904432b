package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/password"
)

// AuthService handles registration and credential checks. Session issuance is
// the HTTP layer's concern; this service only resolves identities.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// Register creates a new customer account. A password/confirmation mismatch is
// a hard precondition: nothing is persisted. Email uniqueness is enforced by
// the store's unique index, not a pre-check, so concurrent signups cannot both
// slip through.
func (s *AuthService) Register(firstName, lastName, email, rawPassword, confirmPassword string) (*models.User, error) {
	if rawPassword != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := password.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Authenticate looks up the account by email and verifies the password
// against the stored hash.
func (s *AuthService) Authenticate(email, rawPassword string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !password.Verify(user.PasswordHash, rawPassword) {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

// ResolveUser loads the account a session refers to. Callers treat any error
// as "anonymous": a session whose user vanished must not fail the request.
func (s *AuthService) ResolveUser(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
