package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyWebsite      = errors.New("website name is required")
	ErrEmptyUsername     = errors.New("username is required")
	ErrEmptySecret       = errors.New("password is required")
	ErrInvalidWebsiteURL = errors.New("invalid website URL")
)
