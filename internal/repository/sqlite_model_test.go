package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/cashgrid/internal/contract"
	"github.com/alexanderramin/cashgrid/internal/db"
	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/grid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRepoDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

// snapshotFixture builds a small built grid and converts it to a snapshot.
func snapshotFixture(t *testing.T) *contract.ModelSnapshot {
	t.Helper()
	m := grid.Build(nil, grid.BuildOptions{
		Buckets:   3,
		StartDate: time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC),
	})
	m.MinCashThreshold = decimal.RequireFromString("1000")
	return contract.FromModel(m)
}

func recordFixture(t *testing.T, id, name string) *ModelRecord {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	return &ModelRecord{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Snapshot:  snapshotFixture(t),
	}
}

func TestSQLiteModelRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteModelRepo(openRepoDB(t))
	ctx := context.Background()

	rec := recordFixture(t, "m1", "Q3 Cash Flow")
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Q3 Cash Flow", got.Name)
	assert.Equal(t, rec.Snapshot.ActualBucketCount, got.Snapshot.ActualBucketCount)
	assert.Equal(t, "weekly", got.Snapshot.BucketWidth)
	assert.True(t, got.Snapshot.MinCashThreshold.Equal(decimal.RequireFromString("1000")))
	require.Len(t, got.Snapshot.Rows, len(rec.Snapshot.Rows))

	// Arena order and per-row fields survive the round trip.
	for i, want := range rec.Snapshot.Rows {
		gotRow := got.Snapshot.Rows[i]
		assert.Equal(t, want.Label, gotRow.Label, "row %d label", i)
		assert.Equal(t, want.Kind, gotRow.Kind, "row %d kind", i)
		assert.Equal(t, want.Editable, gotRow.Editable, "row %d editable", i)
		require.Len(t, gotRow.Values, len(want.Values), "row %d values", i)
	}

	// The snapshot rebuilds into a model that passes consistency checks.
	loaded := got.Snapshot.ToModel()
	grid.Recalculate(loaded)
	assert.Empty(t, grid.CheckInvariants(loaded))
}

func TestSQLiteModelRepo_RoundTripsEditedCells(t *testing.T) {
	repo := NewSQLiteModelRepo(openRepoDB(t))
	ctx := context.Background()

	rec := recordFixture(t, "m1", "Edited")
	model := rec.Snapshot.ToModel()
	row := model.RowByLabel(domain.LabelBeginningBalance)
	require.NotNil(t, row)
	row.Values[0] = decimal.RequireFromString("2500.75")
	grid.Recalculate(model)
	rec.Snapshot = contract.FromModel(model)

	require.NoError(t, repo.Create(ctx, rec))
	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)

	loaded := got.Snapshot.ToModel()
	begin := loaded.RowByLabel(domain.LabelBeginningBalance)
	require.NotNil(t, begin)
	assert.True(t, begin.Values[0].Equal(decimal.RequireFromString("2500.75")))
}

func TestSQLiteModelRepo_RoundTripsForecastState(t *testing.T) {
	repo := NewSQLiteModelRepo(openRepoDB(t))
	ctx := context.Background()

	rec := recordFixture(t, "m1", "Forecasted")
	model := rec.Snapshot.ToModel()
	model.ForecastBuckets = 2
	for _, r := range model.Rows {
		r.ResizeValues(model.BucketCount())
	}
	sales := model.Rows[2] // first inflow placeholder
	sales.ForecastOverride = &domain.ForecastOverride{
		Method: domain.MethodMovingAverage,
		Params: map[string]float64{"window": 4},
	}
	sales.Forecast = &domain.ForecastAnnotation{
		Method: domain.MethodMovingAverage,
		Lower:  []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(2)},
		Upper:  []decimal.Decimal{decimal.NewFromInt(3), decimal.NewFromInt(4)},
	}
	grid.Recalculate(model)
	rec.Snapshot = contract.FromModel(model)

	require.NoError(t, repo.Create(ctx, rec))
	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Snapshot.ForecastBucketCount)
	assert.Equal(t, 5, got.Snapshot.TotalBuckets)

	loaded := got.Snapshot.ToModel()
	lr := loaded.Rows[2]
	require.NotNil(t, lr.ForecastOverride)
	assert.Equal(t, domain.MethodMovingAverage, lr.ForecastOverride.Method)
	assert.Equal(t, 4.0, lr.ForecastOverride.Params["window"])
	require.NotNil(t, lr.Forecast)
	assert.Len(t, lr.Forecast.Lower, 2)
	assert.True(t, lr.Forecast.Upper[1].Equal(decimal.NewFromInt(4)))
}

func TestSQLiteModelRepo_UpdateReplacesRows(t *testing.T) {
	repo := NewSQLiteModelRepo(openRepoDB(t))
	ctx := context.Background()

	rec := recordFixture(t, "m1", "Before")
	require.NoError(t, repo.Create(ctx, rec))

	rec.Name = "After"
	rec.Snapshot.Rows = rec.Snapshot.Rows[:5]
	require.NoError(t, repo.Update(ctx, rec))

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Len(t, got.Snapshot.Rows, 5, "update should replace the row arena wholesale")
}

func TestSQLiteModelRepo_UpdateMissing(t *testing.T) {
	repo := NewSQLiteModelRepo(openRepoDB(t))

	rec := recordFixture(t, "ghost", "Ghost")
	err := repo.Update(context.Background(), rec)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteModelRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteModelRepo(openRepoDB(t))

	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteModelRepo_List(t *testing.T) {
	repo := NewSQLiteModelRepo(openRepoDB(t))
	ctx := context.Background()

	a := recordFixture(t, "m1", "First")
	a.CreatedAt = a.CreatedAt.Add(-time.Hour)
	a.UpdatedAt = a.CreatedAt
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, recordFixture(t, "m2", "Second")))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "First", records[0].Name)
	assert.Equal(t, "Second", records[1].Name)
	assert.Empty(t, records[0].Snapshot.Rows, "list returns metadata only")
}

func TestSQLiteModelRepo_Delete(t *testing.T) {
	database := openRepoDB(t)
	repo := NewSQLiteModelRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, recordFixture(t, "m1", "Doomed")))
	require.NoError(t, repo.Delete(ctx, "m1"))

	_, err := repo.Get(ctx, "m1")
	assert.ErrorIs(t, err, ErrNotFound)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM model_rows`).Scan(&count))
	assert.Equal(t, 0, count, "rows should cascade on delete")

	assert.ErrorIs(t, repo.Delete(ctx, "m1"), ErrNotFound)
}
