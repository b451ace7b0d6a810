package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fitterm/internal/modules/library/domain"
	libraryout "fitterm/internal/modules/library/port/out"
	apperrors "fitterm/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// SQLiteCache stores each library list as a JSON payload keyed by kind.
// The lists are consumed as opaque collections, so a blob per kind is
// enough; there is no local querying beyond "give me the last good copy".
type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(dbPath string) (libraryout.Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	cache := &SQLiteCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

func (c *SQLiteCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS library_cache (
  kind TEXT PRIMARY KEY,
  payload TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create cache table: %w", err)
	}
	return nil
}

func (c *SQLiteCache) save(ctx context.Context, kind string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s cache: %w", kind, err)
	}
	const stmt = `
INSERT INTO library_cache (kind, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(kind) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at;
`
	if _, err := c.db.ExecContext(ctx, stmt, kind, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write %s cache: %w", kind, err)
	}
	return nil
}

func (c *SQLiteCache) load(ctx context.Context, kind string, out any) error {
	var payload string
	err := c.db.QueryRowContext(ctx, `SELECT payload FROM library_cache WHERE kind = ?`, kind).Scan(&payload)
	if err == sql.ErrNoRows {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read %s cache: %w", kind, err)
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("decode %s cache: %w", kind, err)
	}
	return nil
}

func (c *SQLiteCache) SaveMeals(ctx context.Context, meals []domain.Meal) error {
	return c.save(ctx, "meals", meals)
}

func (c *SQLiteCache) Meals(ctx context.Context) ([]domain.Meal, error) {
	var meals []domain.Meal
	if err := c.load(ctx, "meals", &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (c *SQLiteCache) SaveExercises(ctx context.Context, exercises []domain.Exercise) error {
	return c.save(ctx, "exercises", exercises)
}

func (c *SQLiteCache) Exercises(ctx context.Context) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	if err := c.load(ctx, "exercises", &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (c *SQLiteCache) SavePlans(ctx context.Context, plans []domain.Plan) error {
	return c.save(ctx, "plans", plans)
}

func (c *SQLiteCache) Plans(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	if err := c.load(ctx, "plans", &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *SQLiteCache) SaveWeeklyPlans(ctx context.Context, plans []domain.WeeklyPlan) error {
	return c.save(ctx, "weekly_plans", plans)
}

func (c *SQLiteCache) WeeklyPlans(ctx context.Context) ([]domain.WeeklyPlan, error) {
	var plans []domain.WeeklyPlan
	if err := c.load(ctx, "weekly_plans", &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
