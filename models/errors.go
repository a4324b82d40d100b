package models

import "errors"

var (
	// ErrItemNotFound is returned when no item matches the requested id
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidItem is returned when item fields break an item invariant
	ErrInvalidItem = errors.New("invalid item")
	// ErrStoreUnavailable is returned when the remote item collection cannot be reached or rejects the call
	ErrStoreUnavailable = errors.New("item store unavailable")
	// ErrInvalidPurchase is returned when a purchase request fails its preconditions
	ErrInvalidPurchase = errors.New("invalid purchase request")
	// ErrNotifierNotConfigured is returned when no webhook URL is configured
	ErrNotifierNotConfigured = errors.New("purchase webhook is not configured")
	// ErrNotificationFailed is returned when the webhook is unreachable or answers with a non-2xx status
	ErrNotificationFailed = errors.New("purchase notification failed")
	// ErrAuthRejected is returned by the remote auth service for bad credentials or refused sign-ups
	ErrAuthRejected = errors.New("auth rejected")
	// ErrAlreadyRegistered is returned by the remote auth service when the sign-up email exists
	ErrAlreadyRegistered = errors.New("user already registered")
	// ErrDriveNotConfigured is returned when a Drive image is requested without Drive credentials
	ErrDriveNotConfigured = errors.New("google drive is not configured")
)
