// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-history-sync/models"
)

var stageSummaries = map[models.SyncStage]string{
	models.StageAllDone:           "История синхронизирована",
	models.StageUpToDate:          "Изменений нет, история актуальна",
	models.StageCancelled:         "Синхронизация отменена, ничего не изменено",
	models.StageFetchHistoryError: "Не удалось прочитать удалённую историю (неверный ключ или повреждённые данные)",
	models.StageMergeError:        "Удалённая история разошлась с локальной, слияние невозможно",
	models.StageUnauthorizedError: "Нет доступа: проверьте токен",
	models.StageForbiddenError:    "Отправка запрещена для этого проекта или ключа",
	models.StageSyncError:         "Не удалось отправить объединённую историю",
}

// summarize returns the message shown after the terminal event ev.
func summarize(ev models.SyncEvent) string {
	summary, ok := stageSummaries[ev.Stage]
	if !ok {
		summary = ev.Stage.String()
	}
	if ev.Err == nil || !ev.Stage.IsError() {
		return summary
	}

	if network := humanizeServerUnavailableError(ev.Err); network != "" {
		return summary + ". " + network
	}
	return summary + ": " + ev.Err.Error()
}

// humanizeServerUnavailableError returns a short message when err looks like
// a network failure, or "" otherwise.
func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return ""
}
