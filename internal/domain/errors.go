package domain

import "errors"

var (
	// ErrInvalidProfile indicates a room attribute outside its enumeration
	ErrInvalidProfile = errors.New("invalid room profile")

	// ErrPlantNotFound indicates the requested plant isn't in the catalog
	ErrPlantNotFound = errors.New("plant not found")

	// ErrEmptyKeyword indicates a product search without a keyword
	ErrEmptyKeyword = errors.New("search keyword is empty")

	// ErrSearchUnavailable indicates the product search service cannot be reached
	ErrSearchUnavailable = errors.New("product search unavailable")

	// ErrCacheMiss indicates no fresh cached products exist for a keyword
	ErrCacheMiss = errors.New("products not cached")
)
