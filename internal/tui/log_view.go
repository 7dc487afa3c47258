package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-history-sync/models"
)

const (
	shortHashLen  = 12
	maxActionText = 20
	maxTrackText  = 16
)

// RenderLog renders the committed revisions of projectID, oldest first.
func RenderLog(projectID string, version int64, revisions []models.RevisionInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Версия: %d, ревизий: %d\n", version, len(revisions))
	for _, rev := range revisions {
		track := rev.Record.TrackID
		if track == "" {
			track = "-"
		}

		fmt.Fprintf(&b, "\n%4d  %s  %-*s  %-*s  %s",
			rev.Index,
			helpStyle.Render(fitText(rev.Hash, shortHashLen)),
			maxActionText, fitText(rev.Record.Action, maxActionText),
			maxTrackText, fitText(track, maxTrackText),
			rev.Record.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		)
	}

	return renderPage("ИСТОРИЯ "+fitText(projectID, maxTitleText), b.String(), "")
}
