package services

import "errors"

// User-facing error taxonomy. Handlers match on these with errors.Is and turn
// them into a flash message plus redirect, or the matching HTTP status.
var (
	// Registration / login.
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrDuplicateEmail   = errors.New("email is already registered")
	ErrUnknownEmail     = errors.New("email has not been registered")
	ErrInvalidPassword  = errors.New("wrong password")

	// Catalog / cart.
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrAlreadyInCart   = errors.New("product already exists in the cart")
)
