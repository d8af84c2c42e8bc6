package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/cashgrid/internal/contract"
	"github.com/alexanderramin/cashgrid/internal/db"
)

// SQLiteVersionRepo implements VersionRepo using a SQLite database. Versions
// store the whole snapshot as JSON; they are written once and never updated,
// so there is no per-column schema to migrate when the snapshot grows.
type SQLiteVersionRepo struct {
	db db.DBTX
}

// NewSQLiteVersionRepo creates a new SQLiteVersionRepo.
func NewSQLiteVersionRepo(conn db.DBTX) *SQLiteVersionRepo {
	return &SQLiteVersionRepo{db: conn}
}

func (r *SQLiteVersionRepo) Create(ctx context.Context, v *ModelVersion) error {
	data, err := json.Marshal(v.Snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	query := `INSERT INTO model_versions (id, model_id, label, row_count, snapshot_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		v.ID, v.ModelID, v.Label, len(v.Snapshot.Rows), string(data),
		v.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting version: %w", err)
	}
	return nil
}

func (r *SQLiteVersionRepo) Get(ctx context.Context, id string) (*ModelVersion, error) {
	query := `SELECT id, model_id, label, row_count, snapshot_json, created_at
		FROM model_versions WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var v ModelVersion
	var snapshotJSON, createdAtStr string
	err := row.Scan(&v.ID, &v.ModelID, &v.Label, &v.RowCount, &snapshotJSON, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("version %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning version: %w", err)
	}

	if v.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	var snap contract.ModelSnapshot
	if err := json.Unmarshal([]byte(snapshotJSON), &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	v.Snapshot = &snap
	return &v, nil
}

func (r *SQLiteVersionRepo) ListByModel(ctx context.Context, modelID string) ([]contract.VersionInfo, error) {
	query := `SELECT id, label, row_count, created_at
		FROM model_versions WHERE model_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, modelID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	defer rows.Close()

	var infos []contract.VersionInfo
	for rows.Next() {
		var info contract.VersionInfo
		var createdAtStr string
		if err := rows.Scan(&info.VersionID, &info.Label, &info.RowCount, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning version info: %w", err)
		}
		if info.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating versions: %w", err)
	}
	return infos, nil
}

func (r *SQLiteVersionRepo) SetLabel(ctx context.Context, id, label string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE model_versions SET label = ? WHERE id = ?`, label, id)
	if err != nil {
		return fmt.Errorf("labeling version: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking label result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("version %s: %w", id, ErrNotFound)
	}
	return nil
}

// Prune deletes the oldest unlabeled versions beyond keep. Labeled versions
// are pinned and never pruned.
func (r *SQLiteVersionRepo) Prune(ctx context.Context, modelID string, keep int) error {
	if keep < 0 {
		keep = 0
	}
	query := `DELETE FROM model_versions
		WHERE model_id = ? AND label = '' AND id NOT IN (
			SELECT id FROM model_versions
			WHERE model_id = ? AND label = ''
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`
	if _, err := r.db.ExecContext(ctx, query, modelID, modelID, keep); err != nil {
		return fmt.Errorf("pruning versions: %w", err)
	}
	return nil
}
