package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/utils"
	"github.com/go-resty/resty/v2"
)

const (
	// KeyHashHeader carries hex(SHA-256(project secret)) on push.
	KeyHashHeader = "X-Key-Hash"

	// UploadField is the multipart field holding the pushed snapshot.
	UploadField = "file"

	uploadFileName = "history.vcs"

	defaultRequestTimeout = 30 * time.Second
)

type httpTransport struct {
	client *utils.HTTPClient

	token   string
	keyHash string

	logger *logger.Logger
}

// NewHTTPTransport constructs an HTTP/REST implementation of [Transport].
// Fetch issues GET url; Push issues a multipart POST with the snapshot in the
// "file" field, the bearer token, the key hash header and an If-Match (or
// If-None-Match: *) precondition on the fetched snapshot.
func NewHTTPTransport(timeout time.Duration, log *logger.Logger, opts ...Option) Transport {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	o := applyOptions(opts)
	return &httpTransport{
		client:  utils.NewHTTPClient(timeout),
		token:   strings.TrimSpace(o.token),
		keyHash: o.keyHash,
		logger:  log,
	}
}

// Fetch implements [Transport]. The body is streamed through a progress
// reader; total is taken from Content-Length when the server sends one.
func (h *httpTransport) Fetch(ctx context.Context, target string, progress ProgressFunc) (Response, error) {
	resp, err := h.authedRequest(ctx).
		SetDoNotParseResponse(true).
		Get(target)
	if err != nil {
		return Response{}, fmt.Errorf("%w: fetch request: %w", ErrTransport, err)
	}

	raw := resp.RawBody()
	defer raw.Close()

	total := int64(-1)
	if resp.RawResponse != nil {
		total = resp.RawResponse.ContentLength
	}

	body, err := io.ReadAll(newProgressReader(raw, total, progress))
	if err != nil {
		return Response{}, fmt.Errorf("%w: read fetch response: %w", ErrTransport, err)
	}

	h.logger.Debug().
		Str("func", "httpTransport.Fetch").
		Int("status", resp.StatusCode()).
		Int("bytes", len(body)).
		Msg("fetched remote history")

	return Response{StatusCode: resp.StatusCode(), Body: body}, nil
}

// Push implements [Transport].
func (h *httpTransport) Push(ctx context.Context, target string, body []byte, base string, progress ProgressFunc) (Response, error) {
	reader := newProgressReader(bytes.NewReader(body), int64(len(body)), progress)

	req := h.authedRequest(ctx).
		SetFileReader(UploadField, uploadFileName, reader)
	if h.keyHash != "" {
		req.SetHeader(KeyHashHeader, h.keyHash)
	}
	if base == "" {
		req.SetHeader("If-None-Match", "*")
	} else {
		req.SetHeader("If-Match", `"`+base+`"`)
	}

	resp, err := req.Post(target)
	if err != nil {
		return Response{}, fmt.Errorf("%w: push request: %w", ErrTransport, err)
	}

	h.logger.Debug().
		Str("func", "httpTransport.Push").
		Int("status", resp.StatusCode()).
		Int("bytes", len(body)).
		Msg("pushed history")

	return Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

func (h *httpTransport) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
