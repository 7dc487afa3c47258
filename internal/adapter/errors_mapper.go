package adapter

import (
	"fmt"
	"net/http"
)

// StatusError maps a remote status code to one of the sentinel errors of this
// package. 2xx codes map to nil.
func StatusError(code int) error {
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrForbidden, code)
	case http.StatusNotFound:
		return fmt.Errorf("%w: status %d", ErrNotFound, code)
	case http.StatusPreconditionFailed:
		return fmt.Errorf("%w: status %d", ErrHistoryChanged, code)
	case http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: status %d", ErrPayloadTooLarge, code)
	default:
		text := http.StatusText(code)
		if text == "" {
			text = "unknown"
		}
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, code, text)
	}
}
