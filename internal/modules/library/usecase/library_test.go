package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fitterm/internal/modules/library/domain"
	"fitterm/internal/modules/library/usecase"
	apperrors "fitterm/internal/platform/errors"
)

type fakeAPI struct {
	meals []domain.Meal
	err   error
	calls int
}

func (f *fakeAPI) Meals(context.Context) ([]domain.Meal, error) {
	f.calls++
	return f.meals, f.err
}
func (f *fakeAPI) Exercises(context.Context) ([]domain.Exercise, error) { return nil, f.err }
func (f *fakeAPI) Plans(context.Context) ([]domain.Plan, error)         { return nil, f.err }
func (f *fakeAPI) WeeklyPlans(context.Context) ([]domain.WeeklyPlan, error) {
	return nil, f.err
}

type fakeCache struct {
	meals   []domain.Meal
	saved   []domain.Meal
	saveErr error
}

func (f *fakeCache) SaveMeals(_ context.Context, meals []domain.Meal) error {
	f.saved = meals
	return f.saveErr
}

func (f *fakeCache) Meals(context.Context) ([]domain.Meal, error) {
	if f.meals == nil {
		return nil, apperrors.ErrNotFound
	}
	return f.meals, nil
}

func (f *fakeCache) SaveExercises(context.Context, []domain.Exercise) error { return nil }
func (f *fakeCache) Exercises(context.Context) ([]domain.Exercise, error) {
	return nil, apperrors.ErrNotFound
}
func (f *fakeCache) SavePlans(context.Context, []domain.Plan) error { return nil }
func (f *fakeCache) Plans(context.Context) ([]domain.Plan, error) {
	return nil, apperrors.ErrNotFound
}
func (f *fakeCache) SaveWeeklyPlans(context.Context, []domain.WeeklyPlan) error { return nil }
func (f *fakeCache) WeeklyPlans(context.Context) ([]domain.WeeklyPlan, error) {
	return nil, apperrors.ErrNotFound
}
func (f *fakeCache) Close() error { return nil }

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMealsRefreshCacheOnSuccess(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{meals: []domain.Meal{{ID: "m1", Name: "Oatmeal"}}}
	cache := &fakeCache{}
	uc := usecase.NewInteractor(api, cache, quiet())

	meals, err := uc.Meals(context.Background())
	if err != nil {
		t.Fatalf("meals: %v", err)
	}
	if len(meals) != 1 || meals[0].ID != "m1" {
		t.Fatalf("meals = %+v", meals)
	}
	if len(cache.saved) != 1 {
		t.Fatalf("cache not refreshed")
	}
}

func TestMealsFallBackToCacheWhenOffline(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{err: errors.New("connection refused")}
	cache := &fakeCache{meals: []domain.Meal{{ID: "cached"}}}
	uc := usecase.NewInteractor(api, cache, quiet())

	meals, err := uc.Meals(context.Background())
	if err != nil {
		t.Fatalf("expected cache fallback, got %v", err)
	}
	if len(meals) != 1 || meals[0].ID != "cached" {
		t.Fatalf("meals = %+v", meals)
	}
}

func TestMealsSurfaceNetworkErrorWhenCacheEmpty(t *testing.T) {
	t.Parallel()
	netErr := errors.New("connection refused")
	uc := usecase.NewInteractor(&fakeAPI{err: netErr}, &fakeCache{}, quiet())

	if _, err := uc.Meals(context.Background()); !errors.Is(err, netErr) {
		t.Fatalf("want the network error, got %v", err)
	}
}

func TestCacheWriteFailureDoesNotFailTheRead(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{meals: []domain.Meal{{ID: "m1"}}}
	cache := &fakeCache{saveErr: errors.New("disk full")}
	uc := usecase.NewInteractor(api, cache, quiet())

	if _, err := uc.Meals(context.Background()); err != nil {
		t.Fatalf("read must survive a cache write failure, got %v", err)
	}
}

func TestMealOptionsMergeEmbeddedItems(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{meals: []domain.Meal{{ID: "m1", Name: "Oatmeal"}}}
	uc := usecase.NewInteractor(api, &fakeCache{}, quiet())

	options, err := uc.MealOptions(context.Background(), []domain.Meal{
		{ID: "m1", Name: "duplicate"},
		{ID: "m9", Name: "Shared plan smoothie"},
	})
	if err != nil {
		t.Fatalf("meal options: %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("options = %+v", options)
	}
	if options[0].Name != "Oatmeal" || options[1].ID != "m9" {
		t.Fatalf("merge wrong: %+v", options)
	}
}
