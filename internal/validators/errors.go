package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMalformedRecord = errors.New("malformed change record")
	ErrEmptyID         = errors.New("change record id is required")
	ErrEmptyAction     = errors.New("change record action is required")
	ErrUnknownAction   = errors.New("unknown change record action")
	ErrInvalidData     = errors.New("change record data must be a JSON value")
	ErrMissingTime     = errors.New("change record timestamp is required")
)
