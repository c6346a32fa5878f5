package domain

import "errors"

var (
	ErrDownloadFailed    = errors.New("failed to download document")
	ErrUnsupportedFormat = errors.New("document is neither a valid PDF nor a decodable image")
	ErrDocumentTooLarge  = errors.New("document exceeds maximum allowed size")
	ErrRunNotFound       = errors.New("extraction run not found")
	ErrHistoryDisabled   = errors.New("run history is not configured")
	ErrUnauthorized      = errors.New("unauthorized")
)
