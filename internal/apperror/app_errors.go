package apperror

import "errors"

var (
	ErrInvalidPairCount   = errors.New("number of pairs must not be negative")
	ErrNilContentFactory  = errors.New("content factory is required")
	ErrPaletteTooSmall    = errors.New("palette has fewer contents than pairs")
	ErrDuplicateContent   = errors.New("palette contains duplicate content")
	ErrThemeNotFound      = errors.New("theme not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrPublisherNotActive = errors.New("snapshot publisher is not active")
	ErrNotPublished       = errors.New("snapshot was applied but not published")
)
