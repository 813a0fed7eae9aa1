// Package domain holds the sentinel errors shared between the domain packages and the
// storage gateways that implement their repositories.
package domain

import "errors"

var (
	// ErrNotFound is matched (errors.Is) by every gateway not-found error.
	ErrNotFound = errors.New("not found")
	// ErrConflict is matched by gateway errors raised for concurrent or duplicate writes.
	ErrConflict = errors.New("conflict")
)
