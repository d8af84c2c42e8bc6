package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillVersionRowCounts(db); err != nil {
		return fmt.Errorf("backfilling version row counts: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS models (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		start_date       TEXT NOT NULL,
		bucket_width     TEXT NOT NULL DEFAULT 'weekly'
		                 CHECK(bucket_width IN ('weekly','monthly')),
		actual_buckets   INTEGER NOT NULL CHECK(actual_buckets > 0),
		forecast_buckets INTEGER NOT NULL DEFAULT 0 CHECK(forecast_buckets >= 0),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS model_rows (
		model_id             TEXT NOT NULL REFERENCES models(id) ON DELETE CASCADE,
		position             INTEGER NOT NULL,
		row_id               TEXT NOT NULL DEFAULT '',
		label                TEXT NOT NULL,
		kind                 TEXT NOT NULL
		                     CHECK(kind IN ('category','section_header','section_total','net_flow','running_balance')),
		section              TEXT NOT NULL
		                     CHECK(section IN ('inflow','outflow','structural')),
		editable             INTEGER NOT NULL DEFAULT 0,
		is_rollup_parent     INTEGER NOT NULL DEFAULT 0,
		parent_id            TEXT NOT NULL DEFAULT '',
		values_json          TEXT NOT NULL,
		forecast_method      TEXT NOT NULL DEFAULT '',
		lower_json           TEXT NOT NULL DEFAULT '',
		upper_json           TEXT NOT NULL DEFAULT '',
		override_method      TEXT NOT NULL DEFAULT '',
		override_params_json TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (model_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_model_rows_model ON model_rows(model_id)`,
	`CREATE INDEX IF NOT EXISTS idx_model_rows_parent ON model_rows(model_id, parent_id)`,

	`CREATE TABLE IF NOT EXISTS model_versions (
		id            TEXT PRIMARY KEY,
		model_id      TEXT NOT NULL REFERENCES models(id) ON DELETE CASCADE,
		row_count     INTEGER NOT NULL DEFAULT 0,
		snapshot_json TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_model_versions_model ON model_versions(model_id, created_at)`,

	// Add min_cash_threshold and default forecast method to models
	`ALTER TABLE models ADD COLUMN min_cash_threshold TEXT NOT NULL DEFAULT '0'`,
	`ALTER TABLE models ADD COLUMN default_method TEXT NOT NULL DEFAULT 'auto'`,

	// Add user-assigned labels to versions
	`ALTER TABLE model_versions ADD COLUMN label TEXT NOT NULL DEFAULT ''`,
}

// migrateBackfillVersionRowCounts fills row_count for versions written before
// the column carried real values. Idempotent: only touches rows at 0 whose
// snapshot actually has rows.
func migrateBackfillVersionRowCounts(db *sql.DB) error {
	_, err := db.Exec(`UPDATE model_versions
		SET row_count = json_array_length(snapshot_json, '$.rows')
		WHERE row_count = 0
		  AND json_array_length(snapshot_json, '$.rows') > 0`)
	if err != nil {
		return fmt.Errorf("updating row counts: %w", err)
	}
	return nil
}
