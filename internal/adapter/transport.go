// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/MKhiriev/go-history-sync/internal/config"
	"github.com/MKhiriev/go-history-sync/internal/logger"
)

const snapshotExt = ".vcs"

// NewTransport returns the [Transport] matching the scheme of cfg.Address:
// file:// addresses get the file transport, everything else the HTTP one.
func NewTransport(cfg config.ClientAdapter, log *logger.Logger, opts ...Option) (Transport, error) {
	scheme, err := addressScheme(cfg.Address)
	if err != nil {
		return nil, err
	}

	switch scheme {
	case "file":
		return NewOSFileTransport(log), nil
	case "http", "https":
		return NewHTTPTransport(cfg.RequestTimeout, log, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

// ResolveHistoryURL returns the URL under which the snapshot of remoteID is
// stored at address.
//
//	http://host:8080  -> http://host:8080/api/projects/<remoteID>/history
//	file:///mnt/share -> file:///mnt/share/<remoteID>.vcs
func ResolveHistoryURL(address, remoteID string) (string, error) {
	if remoteID == "" {
		return "", fmt.Errorf("empty remote id")
	}

	scheme, err := addressScheme(address)
	if err != nil {
		return "", err
	}

	switch scheme {
	case "file":
		u, err := url.Parse(strings.TrimSpace(address))
		if err != nil {
			return "", fmt.Errorf("invalid file address: %w", err)
		}
		u.Path = path.Join("/", u.Path, remoteID+snapshotExt)
		return u.String(), nil
	case "http", "https":
		base, err := normalizeBaseURL(address)
		if err != nil {
			return "", fmt.Errorf("invalid adapter http address: %w", err)
		}
		return base + "/api/projects/" + url.PathEscape(remoteID) + "/history", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

func addressScheme(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("empty address")
	}
	if !strings.Contains(address, "://") {
		return "http", nil
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("invalid address: %w", err)
	}
	return strings.ToLower(u.Scheme), nil
}
