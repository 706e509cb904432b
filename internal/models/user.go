package models

import "time"

// Roles assignable to a user. The admin account is seeded at startup from
// configuration; everyone who signs up is a customer.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered account of the store.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(250)"`
	LastName     string    `json:"last_name" gorm:"type:varchar(250)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(250)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"` // Never serialized
	Role         string    `json:"role" gorm:"type:varchar(20);default:customer"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may perform catalog writes.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
