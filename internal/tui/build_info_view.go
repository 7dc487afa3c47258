// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"

	"github.com/MKhiriev/go-history-sync/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	body := fmt.Sprintf(
		"Название приложения: go-history-sync\nВерсия: %s\nДата сборки: %s\nКоммит: %s",
		valueOrNA(info.String()),
		valueOrNA(info.BuildDate()),
		valueOrNA(info.BuildCommit()),
	)
	return renderPage("ИНФОРМАЦИЯ О ПРОГРАММЕ", body, "")
}

// valueOrNA covers the zero AppBuildInfo, whose fields are empty.
func valueOrNA(v string) string {
	if v == "" {
		return models.NotAvailable
	}
	return v
}
