// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	enableForeignKeys = `PRAGMA foreign_keys = ON;`

	selectProjectVersion = `
		SELECT version
		FROM projects
		WHERE project_id = ?;`

	selectRevisions = `
		SELECT
			seq,
			hash,
			payload
		FROM revisions
		WHERE project_id = ?
		ORDER BY seq;`

	ensureProject = `
		INSERT INTO projects (project_id, version)
		VALUES (?, 0)
		ON CONFLICT (project_id) DO NOTHING;`

	upsertProjectVersion = `
		INSERT INTO projects (project_id, version)
		VALUES (?, ?)
		ON CONFLICT (project_id) DO UPDATE SET version = excluded.version;`

	insertRevision = `
		INSERT INTO revisions (
			project_id,
			seq,
			hash,
			payload
		) VALUES (?, ?, ?, ?);`

	deleteRevisions = `
		DELETE FROM revisions
		WHERE project_id = ?;`
)
