package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the id does not exist in the requested namespace
	ErrNotFound = errors.New("title not found")

	// ErrUnreachable indicates the catalog API could not be reached
	ErrUnreachable = errors.New("catalog is unreachable")

	// ErrUnauthorized indicates the bearer token was rejected
	ErrUnauthorized = errors.New("catalog token is invalid")

	// ErrMalformed indicates the response body did not have the expected shape
	ErrMalformed = errors.New("malformed catalog response")

	// ErrInvalidListKind indicates an unknown list category
	ErrInvalidListKind = errors.New("unknown list kind")

	// ErrStorage indicates the local blob store failed
	ErrStorage = errors.New("local storage failure")
)
