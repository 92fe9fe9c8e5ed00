package apperrors

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidDate     = errors.New("invalid date")

	// store layer
	ErrFetchFailed  = errors.New("failed to fetch events")
	ErrCreateFailed = errors.New("failed to create event")
	ErrUpdateFailed = errors.New("failed to update event")
	ErrDeleteFailed = errors.New("failed to delete event")

	// calendar layer
	ErrSerializationFailed = errors.New("failed to generate calendar file")
	ErrDownloadFailed      = errors.New("failed to download calendar file")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
