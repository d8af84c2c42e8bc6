package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacyToCurrentSchema simulates upgrading a database
// created before min_cash_threshold, default_method and version labels existed.
// Verifies that data inserted under the old schema survives migration and that
// the new columns arrive with correct defaults.
func TestMigrate_UpgradePath_LegacyToCurrentSchema(t *testing.T) {
	// Create a raw DB without OpenDB to manually control the schema.
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacyStatements := []string{
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
		`CREATE TABLE IF NOT EXISTS model_versions (
			id            TEXT PRIMARY KEY,
			model_id      TEXT NOT NULL REFERENCES models(id) ON DELETE CASCADE,
			row_count     INTEGER NOT NULL DEFAULT 0,
			snapshot_json TEXT NOT NULL,
			created_at    TEXT NOT NULL
		)`,
	}
	for i, stmt := range legacyStatements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "legacy statement %d failed", i)
	}

	// Insert legacy data BEFORE running migrations.
	_, err = db.Exec(`INSERT INTO models (id, name, start_date, actual_buckets, created_at, updated_at)
		VALUES ('m1', 'Legacy Model', '2026-01-05', 13, '2026-01-05T00:00:00Z', '2026-01-05T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO model_rows (model_id, position, row_id, label, kind, section, editable, values_json)
		VALUES ('m1', 0, '', 'Beginning Cash Balance', 'running_balance', 'structural', 1, '["500"]')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO model_versions (id, model_id, snapshot_json, created_at)
		VALUES ('v1', 'm1', '{"rows":[{"label":"Sales"}]}', '2026-01-05T00:00:00Z')`)
	require.NoError(t, err)

	// === Run current migrations on legacy DB ===
	require.NoError(t, Migrate(db), "migration on legacy schema should succeed")

	// === Verify data survived ===
	var name string
	var actuals int
	require.NoError(t, db.QueryRow(`SELECT name, actual_buckets FROM models WHERE id = 'm1'`).Scan(&name, &actuals))
	assert.Equal(t, "Legacy Model", name)
	assert.Equal(t, 13, actuals)

	var label, valuesJSON string
	require.NoError(t, db.QueryRow(`SELECT label, values_json FROM model_rows WHERE model_id = 'm1'`).Scan(&label, &valuesJSON))
	assert.Equal(t, "Beginning Cash Balance", label)
	assert.Equal(t, `["500"]`, valuesJSON)

	// === Verify new columns added with defaults ===
	var threshold, method string
	require.NoError(t, db.QueryRow(`SELECT min_cash_threshold, default_method FROM models WHERE id = 'm1'`).Scan(&threshold, &method))
	assert.Equal(t, "0", threshold)
	assert.Equal(t, "auto", method)

	var versionLabel string
	var rowCount int
	require.NoError(t, db.QueryRow(`SELECT label, row_count FROM model_versions WHERE id = 'v1'`).Scan(&versionLabel, &rowCount))
	assert.Equal(t, "", versionLabel, "legacy version should get default empty label")
	assert.Equal(t, 1, rowCount, "legacy version row_count should be backfilled")

	// === Verify idempotency: running Migrate again should not break anything ===
	require.NoError(t, Migrate(db), "re-running Migrate on already-migrated DB should succeed")

	var nameAfter string
	require.NoError(t, db.QueryRow(`SELECT name FROM models WHERE id = 'm1'`).Scan(&nameAfter))
	assert.Equal(t, "Legacy Model", nameAfter)
}
