package utils

import "errors"

// Common application errors used across services. Callers wrap them with
// fmt.Errorf("%w: ...") to attach detail; handlers match with errors.Is.
var (
	// validation: caught before any write, no state change
	ErrValidation        = errors.New("VALIDATION_ERROR")
	ErrInsufficientStock = errors.New("INSUFFICIENT_STOCK")

	// not found in the owner's snapshot
	ErrProductNotFound  = errors.New("PRODUCT_NOT_FOUND")
	ErrSaleNotFound     = errors.New("SALE_NOT_FOUND")
	ErrEventNotFound    = errors.New("EVENT_NOT_FOUND")
	ErrCategoryNotFound = errors.New("CATEGORY_NOT_FOUND")
	ErrCategoryExists   = errors.New("CATEGORY_EXISTS")
	ErrProfileNotFound  = errors.New("PROFILE_NOT_FOUND")

	// record store failures; snapshot left at last-known-good
	ErrStore     = errors.New("STORE_ERROR")
	ErrStockSync = errors.New("STOCK_SYNC_FAILED")

	// authentication
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrSessionExpired     = errors.New("SESSION_EXPIRED")
)
