package service

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/history"
	"github.com/MKhiriev/go-history-sync/models"
	"github.com/stretchr/testify/require"
)

const testProjectID = "project-1"

var testSecret = []byte("correct horse battery staple")

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// changeRecord returns the payload of a valid edit with a deterministic id.
func changeRecord(t *testing.T, n int) []byte {
	t.Helper()

	payload, err := json.Marshal(models.ChangeRecord{
		ID:        fmt.Sprintf("rec-%d", n),
		Action:    models.ActionPatternClipInsert,
		TrackID:   "track-1",
		Data:      json.RawMessage(fmt.Sprintf(`{"clip":%d}`, n)),
		CreatedAt: fixedTime,
	})
	require.NoError(t, err)
	return payload
}

// buildStore returns a store of projectID at version holding the records
// with the given numbers, in order.
func buildStore(t *testing.T, projectID string, version int64, records ...int) *history.Store {
	t.Helper()

	s := history.NewStore(projectID)
	for _, n := range records {
		_, err := s.Append(changeRecord(t, n))
		require.NoError(t, err)
	}
	for s.Version() < version {
		s.IncrementVersion()
	}
	return s
}

func snapshotOf(t *testing.T, s *history.Store) []byte {
	t.Helper()

	data, err := history.Marshal(s)
	require.NoError(t, err)
	return data
}

// collectEvents drains events until the channel is closed.
func collectEvents(t *testing.T, events <-chan models.SyncEvent) []models.SyncEvent {
	t.Helper()

	var out []models.SyncEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("sync attempt did not finish, events so far: %v", stageSequence(out))
			return nil
		}
	}
}

// stageSequence returns the visited stages without repeats caused by
// progress events.
func stageSequence(events []models.SyncEvent) []models.SyncStage {
	var stages []models.SyncStage
	for _, ev := range events {
		if len(stages) > 0 && stages[len(stages)-1] == ev.Stage {
			continue
		}
		stages = append(stages, ev.Stage)
	}
	return stages
}

func lastEvent(t *testing.T, events []models.SyncEvent) models.SyncEvent {
	t.Helper()

	require.NotEmpty(t, events)
	return events[len(events)-1]
}
