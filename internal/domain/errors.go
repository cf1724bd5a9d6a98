package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthenticated indicates the session has no valid, unexpired token.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrIdentityResolution indicates no usable customer identifier could be
	// derived from the session token.
	ErrIdentityResolution = errors.New("customer identity could not be resolved")
	// ErrEmptyCart indicates a checkout was attempted with zero line items.
	ErrEmptyCart = errors.New("cart is empty")
)
