package repositories

import (
	"fmt"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. A unique-index violation on email surfaces as
// ErrDuplicateKey.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := translate(r.db.Create(user).Error); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := translate(r.db.First(&user, "email = ?", email).Error); err != nil {
		return nil, fmt.Errorf("user with email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := translate(r.db.First(&user, "id = ?", id).Error); err != nil {
		return nil, fmt.Errorf("user with ID %d: %w", id, err)
	}
	return &user, nil
}
