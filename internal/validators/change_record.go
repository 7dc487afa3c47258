package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-history-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldID        = "id"
	FieldAction    = "action"
	FieldData      = "data"
	FieldCreatedAt = "created_at"
)

var allFields = []string{FieldID, FieldAction, FieldData, FieldCreatedAt}

// KnownActions lists the editing operations the editing layer produces.
var KnownActions = []string{
	models.ActionPatternClipInsert,
	models.ActionPatternClipRemove,
	models.ActionPatternClipMove,
	models.ActionPatternEdit,
	models.ActionTrackInsert,
	models.ActionTrackRemove,
	models.ActionTrackUpdate,
	models.ActionProjectUpdate,
}

type ChangeRecordValidator struct {
}

func NewChangeRecordValidator() Validator {
	return &ChangeRecordValidator{}
}

// Validate accepts a [models.ChangeRecord], a pointer to one, or its JSON
// encoding as []byte.
func (v *ChangeRecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ChangeRecord:
		return v.validateChangeRecord(ctx, value, fields...)
	case *models.ChangeRecord:
		if value == nil {
			return ErrMalformedRecord
		}
		return v.validateChangeRecord(ctx, *value, fields...)
	case []byte:
		var record models.ChangeRecord
		if err := json.Unmarshal(value, &record); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}
		return v.validateChangeRecord(ctx, record, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ChangeRecordValidator) validateChangeRecord(_ context.Context, record models.ChangeRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = allFields
	}

	for _, field := range fields {
		switch field {
		case FieldID:
			if record.ID == "" {
				return ErrEmptyID
			}
		case FieldAction:
			if record.Action == "" {
				return ErrEmptyAction
			}
			if !slices.Contains(KnownActions, record.Action) {
				return fmt.Errorf("%w: %q", ErrUnknownAction, record.Action)
			}
		case FieldData:
			if len(record.Data) > 0 && !json.Valid(record.Data) {
				return ErrInvalidData
			}
		case FieldCreatedAt:
			if record.CreatedAt.IsZero() {
				return ErrMissingTime
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

// ValidateChangeRecord checks a revision payload produced by the editing
// layer. It has the shape of a history payload validator.
func ValidateChangeRecord(payload []byte) error {
	return NewChangeRecordValidator().Validate(context.Background(), payload)
}
