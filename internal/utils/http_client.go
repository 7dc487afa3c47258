package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every request of the history client.
const UserAgent = "go-history-sync"

// HTTPClient embeds *resty.Client so callers get its full request API.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with the given per-request
// timeout and the history client's User-Agent. Redirects are not followed:
// a redirected push would lose its multipart body.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", UserAgent).
		SetRedirectPolicy(resty.NoRedirectPolicy())

	return &HTTPClient{Client: client}
}
