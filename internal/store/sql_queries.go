package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-history-sync/models"
)

const historiesTable = "histories"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildSelectHistoryQuery selects the snapshot stored under remoteID.
func buildSelectHistoryQuery(remoteID string) (string, []any, error) {
	query, args, err := psql.
		Select("remote_id", "blob", "key_hash", "etag", "updated_at").
		From(historiesTable).
		Where(sq.Eq{"remote_id": remoteID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

const upsertHistoryUpdate = "ON CONFLICT (remote_id) DO UPDATE SET " +
	"blob = EXCLUDED.blob, etag = EXCLUDED.etag, updated_at = EXCLUDED.updated_at " +
	"WHERE " + historiesTable + ".key_hash = EXCLUDED.key_hash"

// buildUpsertHistoryQuery inserts or replaces a snapshot. The conflict branch
// only fires when the stored key hash equals the pushed one, so a push under a
// different key affects zero rows. blob.BaseETag narrows it further: to a
// stored snapshot with that etag, or, for [models.NoHistoryETag], to no
// stored snapshot at all.
func buildUpsertHistoryQuery(blob models.HistoryBlob) (string, []any, error) {
	insert := psql.
		Insert(historiesTable).
		Columns("remote_id", "blob", "key_hash", "etag", "updated_at").
		Values(blob.RemoteID, blob.Blob, blob.KeyHash, blob.ETag, sq.Expr("NOW()"))

	switch blob.BaseETag {
	case "":
		insert = insert.Suffix(upsertHistoryUpdate)
	case models.NoHistoryETag:
		insert = insert.Suffix("ON CONFLICT (remote_id) DO NOTHING")
	default:
		insert = insert.Suffix(upsertHistoryUpdate+" AND "+historiesTable+".etag = ?", blob.BaseETag)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
