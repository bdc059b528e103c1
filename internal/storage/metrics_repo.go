package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"daylog/internal/journal"
)

// MetricsRepo provides methods for daily metrics operations.
type MetricsRepo struct {
	db DBTX
}

// NewMetricsRepo creates a new MetricsRepo.
func NewMetricsRepo(db DBTX) *MetricsRepo {
	return &MetricsRepo{db: db}
}

const metricsColumns = "id, day, steps, sleep_hours, weight_kg, resting_heart_rate, created_at, updated_at"

// GetByDay returns the record for day, or ErrNotFound.
func (r *MetricsRepo) GetByDay(ctx context.Context, day journal.DateKey) (*MetricsRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+metricsColumns+" FROM daily_metrics WHERE day = ?",
		day,
	)
	rec, err := scanMetrics(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	return rec, nil
}

// Upsert inserts rec or updates the existing row for rec.Day.
// On update the stored ID and CreatedAt are kept and copied back into rec.
func (r *MetricsRepo) Upsert(ctx context.Context, rec *MetricsRecord) error {
	if rec.Day.IsZero() {
		return errors.New("metrics record has no day")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = rec.UpdatedAt
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_metrics (`+metricsColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (day) DO UPDATE SET
		 steps = excluded.steps,
		 sleep_hours = excluded.sleep_hours,
		 weight_kg = excluded.weight_kg,
		 resting_heart_rate = excluded.resting_heart_rate,
		 updated_at = excluded.updated_at`,
		rec.ID, rec.Day, rec.Steps, rec.SleepHours, rec.WeightKg, rec.RestingHeartRate, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert metrics: %w", err)
	}

	// Read back the identity that survived a conflict.
	err = r.db.QueryRowContext(ctx,
		"SELECT id, created_at FROM daily_metrics WHERE day = ?",
		rec.Day,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to read back daily_metrics row: %w", err)
	}
	return nil
}

// List returns records with from <= day <= to, most recent first.
// A zero bound is open.
func (r *MetricsRepo) List(ctx context.Context, from, to journal.DateKey) ([]MetricsRecord, error) {
	query := "SELECT " + metricsColumns + " FROM daily_metrics WHERE 1 = 1"
	var args []any
	if !from.IsZero() {
		query += " AND day >= ?"
		args = append(args, from)
	}
	if !to.IsZero() {
		query += " AND day <= ?"
		args = append(args, to)
	}
	query += " ORDER BY day DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []MetricsRecord
	for rows.Next() {
		rec, err := scanMetrics(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metrics: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetrics(row rowScanner) (*MetricsRecord, error) {
	var (
		rec       MetricsRecord
		steps     sql.NullInt64
		sleep     sql.NullFloat64
		weight    sql.NullFloat64
		heartRate sql.NullInt64
	)
	if err := row.Scan(&rec.ID, &rec.Day, &steps, &sleep, &weight, &heartRate, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Steps = intPtr(steps)
	rec.SleepHours = floatPtr(sleep)
	rec.WeightKg = floatPtr(weight)
	rec.RestingHeartRate = intPtr(heartRate)
	return &rec, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
