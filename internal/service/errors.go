package service

import "errors"

// Common service errors
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrCommentRequired is returned when a rejection carries no comment
	ErrCommentRequired = errors.New("a comment is required to reject an operation")

	// ErrInvalidCredentials is returned when the backend refuses a login
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrImageTooLarge is returned when a vehicle image exceeds the upload limit
	ErrImageTooLarge = errors.New("image exceeds the 5 MB limit")

	// ErrNotAnImage is returned when a vehicle upload is not an image file
	ErrNotAnImage = errors.New("uploaded file is not an image")

	// ErrUnknownExportFormat is returned for export formats the gateway cannot produce
	ErrUnknownExportFormat = errors.New("unknown export format")

	// ErrForecastUnavailable is returned when the annual summary carries no forecast
	ErrForecastUnavailable = errors.New("no forecast available")
)
