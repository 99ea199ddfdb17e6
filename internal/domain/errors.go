package domain

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrEmptyPrompt      = errors.New("prompt text is empty")
	ErrOperationBusy    = errors.New("operation already in flight")
	ErrMissingAPIKey    = errors.New("AI service credentials are not configured")
	ErrProviderFailure  = errors.New("provider failure")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrDecodeArtwork    = errors.New("artwork image could not be decoded")
)
