// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MKhiriev/go-history-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validRecord() models.ChangeRecord {
	return models.ChangeRecord{
		ID:        "6f1c2d1e-0000-4000-8000-000000000001",
		Action:    models.ActionPatternClipInsert,
		TrackID:   "track-1",
		Data:      json.RawMessage(`{"start":0,"length":16}`),
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewChangeRecordValidator()
	ctx := context.Background()
	record := validRecord()
	payload, err := json.Marshal(record)
	require.NoError(t, err)

	assert.NoError(t, v.Validate(ctx, record))
	assert.NoError(t, v.Validate(ctx, &record))
	assert.NoError(t, v.Validate(ctx, payload))

	assert.ErrorIs(t, v.Validate(ctx, (*models.ChangeRecord)(nil)), ErrMalformedRecord)
	assert.ErrorIs(t, v.Validate(ctx, "string"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, []byte("{not json")), ErrMalformedRecord)
}

// ---------------------------------------------------------------------------
// TestValidate_Fields
// ---------------------------------------------------------------------------

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.ChangeRecord)
		fields []string
		want   error
	}{
		{name: "valid", mutate: func(*models.ChangeRecord) {}},
		{name: "empty id", mutate: func(r *models.ChangeRecord) { r.ID = "" }, want: ErrEmptyID},
		{name: "empty action", mutate: func(r *models.ChangeRecord) { r.Action = "" }, want: ErrEmptyAction},
		{name: "unknown action", mutate: func(r *models.ChangeRecord) { r.Action = "undoEverything" }, want: ErrUnknownAction},
		{name: "invalid data", mutate: func(r *models.ChangeRecord) { r.Data = json.RawMessage(`{`) }, want: ErrInvalidData},
		{name: "no data is fine", mutate: func(r *models.ChangeRecord) { r.Data = nil }},
		{name: "zero time", mutate: func(r *models.ChangeRecord) { r.CreatedAt = time.Time{} }, want: ErrMissingTime},
		{
			name:   "scoped to id ignores bad action",
			mutate: func(r *models.ChangeRecord) { r.Action = "" },
			fields: []string{FieldID},
		},
		{
			name:   "unknown field",
			mutate: func(*models.ChangeRecord) {},
			fields: []string{"colour"},
			want:   ErrUnknownField,
		},
	}

	v := NewChangeRecordValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			err := v.Validate(context.Background(), r, tt.fields...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateChangeRecord
// ---------------------------------------------------------------------------

func TestValidateChangeRecord(t *testing.T) {
	payload, err := json.Marshal(validRecord())
	require.NoError(t, err)
	assert.NoError(t, ValidateChangeRecord(payload))

	assert.ErrorIs(t, ValidateChangeRecord([]byte(`{"id":"x"}`)), ErrEmptyAction)
	assert.ErrorIs(t, ValidateChangeRecord([]byte(`[]`)), ErrMalformedRecord)
}
