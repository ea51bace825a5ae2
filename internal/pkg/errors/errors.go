// Package errors holds the sentinel conditions shared by the usecases.
// Usecases wrap them in *apierr.Error so handlers can map status codes while
// tests keep matching with errors.Is.
package errors

import "errors"

// Generic conditions.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Swipe, match, and conversation conditions.
var (
	ErrDuplicateInteraction = errors.New("interaction already recorded within the last 24 hours")
	ErrSelfTarget           = errors.New("cannot interact with own content")
	ErrNoNewMatch           = errors.New("no new matches found")
	ErrSelfRead             = errors.New("cannot mark own message as read")
)
