package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-history-sync/internal/service"
	"github.com/MKhiriev/go-history-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrHistoryNotFound:         http.StatusNotFound,
	service.ErrKeyHashMismatch:         http.StatusForbidden,
	service.ErrPayloadTooLarge:         http.StatusRequestEntityTooLarge,
	service.ErrHistoryChanged:          http.StatusPreconditionFailed,
	service.ErrProjectForbidden:        http.StatusForbidden,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	ErrProjectNotInToken: http.StatusForbidden,
	ErrMissingKeyHash:    http.StatusBadRequest,
	ErrMalformedKeyHash:  http.StatusBadRequest,
	ErrMissingUpload:     http.StatusBadRequest,

	store.ErrHistoryNotFound: http.StatusNotFound,
	store.ErrKeyHashMismatch: http.StatusForbidden,
	store.ErrHistoryChanged:  http.StatusPreconditionFailed,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
