package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/cashgrid/internal/contract"
	"github.com/alexanderramin/cashgrid/internal/db"
	"github.com/shopspring/decimal"
)

// SQLiteModelRepo implements ModelRepo using a SQLite database. It accepts a
// db.DBTX so the same repo works standalone or inside a unit of work.
type SQLiteModelRepo struct {
	db db.DBTX
}

// NewSQLiteModelRepo creates a new SQLiteModelRepo.
func NewSQLiteModelRepo(conn db.DBTX) *SQLiteModelRepo {
	return &SQLiteModelRepo{db: conn}
}

const dateLayout = "2006-01-02"

func (r *SQLiteModelRepo) Create(ctx context.Context, m *ModelRecord) error {
	s := m.Snapshot
	query := `INSERT INTO models (id, name, start_date, bucket_width, actual_buckets, forecast_buckets,
			min_cash_threshold, default_method, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		s.StartDate.Format(dateLayout),
		s.BucketWidth,
		s.ActualBucketCount,
		s.ForecastBucketCount,
		s.MinCashThreshold.String(),
		s.DefaultForecastMethod,
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting model: %w", err)
	}
	return r.replaceRows(ctx, m.ID, s.Rows)
}

func (r *SQLiteModelRepo) Get(ctx context.Context, id string) (*ModelRecord, error) {
	query := `SELECT id, name, start_date, bucket_width, actual_buckets, forecast_buckets,
			min_cash_threshold, default_method, created_at, updated_at
		FROM models WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	m, err := r.scanModel(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.loadRows(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Snapshot.Rows = rows
	m.Snapshot.TotalBuckets = m.Snapshot.ActualBucketCount + m.Snapshot.ForecastBucketCount
	return m, nil
}

func (r *SQLiteModelRepo) List(ctx context.Context) ([]*ModelRecord, error) {
	query := `SELECT id, name, start_date, bucket_width, actual_buckets, forecast_buckets,
			min_cash_threshold, default_method, created_at, updated_at
		FROM models ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer rows.Close()

	var records []*ModelRecord
	for rows.Next() {
		m, err := r.scanModelFromRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating models: %w", err)
	}
	return records, nil
}

func (r *SQLiteModelRepo) Update(ctx context.Context, m *ModelRecord) error {
	s := m.Snapshot
	query := `UPDATE models SET name = ?, start_date = ?, bucket_width = ?, actual_buckets = ?,
			forecast_buckets = ?, min_cash_threshold = ?, default_method = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Name,
		s.StartDate.Format(dateLayout),
		s.BucketWidth,
		s.ActualBucketCount,
		s.ForecastBucketCount,
		s.MinCashThreshold.String(),
		s.DefaultForecastMethod,
		nowUTC(),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating model: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("model %s: %w", m.ID, ErrNotFound)
	}
	return r.replaceRows(ctx, m.ID, s.Rows)
}

func (r *SQLiteModelRepo) Delete(ctx context.Context, id string) error {
	// model_rows and model_versions cascade.
	res, err := r.db.ExecContext(ctx, `DELETE FROM models WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting model: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("model %s: %w", id, ErrNotFound)
	}
	return nil
}

// replaceRows rewrites the whole row arena for a model. Positions are the
// arena order, which the load path preserves.
func (r *SQLiteModelRepo) replaceRows(ctx context.Context, modelID string, rows []contract.RowPayload) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM model_rows WHERE model_id = ?`, modelID); err != nil {
		return fmt.Errorf("clearing model rows: %w", err)
	}

	query := `INSERT INTO model_rows (model_id, position, row_id, label, kind, section, editable,
			is_rollup_parent, parent_id, values_json, forecast_method, lower_json, upper_json,
			override_method, override_params_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for pos, p := range rows {
		valuesJSON, err := marshalDecimals(p.Values)
		if err != nil {
			return err
		}
		if valuesJSON == "" {
			valuesJSON = "[]"
		}
		lowerJSON, err := marshalDecimals(p.Lower)
		if err != nil {
			return err
		}
		upperJSON, err := marshalDecimals(p.Upper)
		if err != nil {
			return err
		}
		paramsJSON, err := marshalParams(p.OverrideParams)
		if err != nil {
			return err
		}

		if _, err := r.db.ExecContext(ctx, query,
			modelID, pos, p.ID, p.Label, p.Kind, p.Section,
			boolToInt(p.Editable), boolToInt(p.IsRollupParent), p.ParentID,
			valuesJSON, p.Method, lowerJSON, upperJSON,
			p.OverrideMethod, paramsJSON,
		); err != nil {
			return fmt.Errorf("inserting model row %d: %w", pos, err)
		}
	}
	return nil
}

func (r *SQLiteModelRepo) loadRows(ctx context.Context, modelID string) ([]contract.RowPayload, error) {
	query := `SELECT row_id, label, kind, section, editable, is_rollup_parent, parent_id,
			values_json, forecast_method, lower_json, upper_json, override_method, override_params_json
		FROM model_rows WHERE model_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, modelID)
	if err != nil {
		return nil, fmt.Errorf("loading model rows: %w", err)
	}
	defer rows.Close()

	var payloads []contract.RowPayload
	for rows.Next() {
		var p contract.RowPayload
		var editable, rollup int
		var valuesJSON, lowerJSON, upperJSON, paramsJSON string
		if err := rows.Scan(
			&p.ID, &p.Label, &p.Kind, &p.Section, &editable, &rollup, &p.ParentID,
			&valuesJSON, &p.Method, &lowerJSON, &upperJSON, &p.OverrideMethod, &paramsJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning model row: %w", err)
		}
		p.Editable = intToBool(editable)
		p.IsRollupParent = intToBool(rollup)
		if p.Values, err = unmarshalDecimals(valuesJSON); err != nil {
			return nil, err
		}
		if p.Lower, err = unmarshalDecimals(lowerJSON); err != nil {
			return nil, err
		}
		if p.Upper, err = unmarshalDecimals(upperJSON); err != nil {
			return nil, err
		}
		if p.OverrideParams, err = unmarshalParams(paramsJSON); err != nil {
			return nil, err
		}
		payloads = append(payloads, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating model rows: %w", err)
	}
	return payloads, nil
}

// scanModel scans metadata from a *sql.Row into a record with an empty-rows
// snapshot.
func (r *SQLiteModelRepo) scanModel(row *sql.Row) (*ModelRecord, error) {
	m, err := scanModelColumns(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("model: %w", ErrNotFound)
	}
	return m, err
}

func (r *SQLiteModelRepo) scanModelFromRows(rows *sql.Rows) (*ModelRecord, error) {
	return scanModelColumns(rows.Scan)
}

func scanModelColumns(scan func(dest ...any) error) (*ModelRecord, error) {
	var m ModelRecord
	var s contract.ModelSnapshot
	var startDateStr, thresholdStr, createdAtStr, updatedAtStr string

	err := scan(
		&m.ID, &m.Name,
		&startDateStr, &s.BucketWidth, &s.ActualBucketCount, &s.ForecastBucketCount,
		&thresholdStr, &s.DefaultForecastMethod,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning model: %w", err)
	}

	if s.StartDate, err = time.Parse(dateLayout, startDateStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if s.MinCashThreshold, err = decimal.NewFromString(thresholdStr); err != nil {
		return nil, fmt.Errorf("parsing min_cash_threshold: %w", err)
	}
	if m.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	s.TotalBuckets = s.ActualBucketCount + s.ForecastBucketCount

	m.Snapshot = &s
	return &m, nil
}
