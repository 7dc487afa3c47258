package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-history-sync/internal/adapter"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/service"
	"github.com/MKhiriev/go-history-sync/internal/utils"
	"github.com/MKhiriev/go-history-sync/models"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead is the body allowance on top of maxUploadSize for
// multipart boundaries and part headers.
const multipartOverhead = 64 << 10

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	remoteID := chi.URLParam(r, "remoteID")

	blob, err := h.services.HistoryService.GetHistory(r.Context(), remoteID)
	if errors.Is(err, service.ErrHistoryNotFound) {
		log.Debug().Str("func", "*Handler.getHistory").Str("remote_id", remoteID).Msg("no history stored yet")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.getHistory").Str("remote_id", remoteID).Msg("error getting history")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Blob)))
	if blob.ETag != "" {
		w.Header().Set("ETag", `"`+blob.ETag+`"`)
	}
	if !blob.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", blob.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(blob.Blob)
}

func (h *Handler) pushHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	remoteID := chi.URLParam(r, "remoteID")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	data, err := readUpload(r)
	if err != nil {
		status := http.StatusBadRequest
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusRequestEntityTooLarge
		}
		log.Err(err).Str("func", "*Handler.pushHistory").Str("remote_id", remoteID).Msg("error reading upload")
		http.Error(w, err.Error(), status)
		return
	}

	err = h.services.HistoryService.SaveHistory(r.Context(), models.HistoryBlob{
		RemoteID: remoteID,
		Blob:     data,
		KeyHash:  r.Header.Get(adapter.KeyHashHeader),
		BaseETag: baseETag(r),
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.pushHistory").Str("remote_id", remoteID).Msg("error saving history")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().
		Str("func", "*Handler.pushHistory").
		Str("remote_id", remoteID).
		Int("size", len(data)).
		Msg("history stored")

	if _, err = utils.WriteJSON(w, models.PushReceipt{RemoteID: remoteID, Size: len(data)}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.pushHistory").Msg("error writing push receipt")
	}
}

// baseETag reads the precondition of a push. "If-None-Match: *" asks for no
// stored history; If-Match names the stored snapshot the push is based on.
// Without either header the push is unconditional.
func baseETag(r *http.Request) string {
	if strings.TrimSpace(r.Header.Get("If-None-Match")) == "*" {
		return models.NoHistoryETag
	}

	tag := strings.TrimSpace(r.Header.Get("If-Match"))
	if tag == "*" {
		return ""
	}
	tag = strings.TrimPrefix(tag, "W/")
	return strings.Trim(tag, `"`)
}

// readUpload returns the multipart "file" field, or the raw body for any
// other content type.
func readUpload(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			return nil, ErrMissingUpload
		}
		return data, nil
	}

	file, _, err := r.FormFile(adapter.UploadField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, ErrMissingUpload
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrMissingUpload
	}
	return data, nil
}
