package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/utils"
)

type versionResponse struct {
	Version string `json:"version"`
}

// getServerVersion answers in plain text unless the caller asks for JSON.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		if _, err := utils.WriteJSON(w, versionResponse{Version: serverVersion}, http.StatusOK); err != nil {
			logger.FromRequest(r).Err(err).Str("func", "*Handler.getServerVersion").Msg("error writing version")
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(serverVersion))
}
