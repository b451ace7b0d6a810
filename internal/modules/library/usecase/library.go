package usecase

import (
	"context"
	"log/slog"

	"fitterm/internal/modules/library/domain"
	libraryin "fitterm/internal/modules/library/port/in"
	libraryout "fitterm/internal/modules/library/port/out"
)

// Interactor serves library lists read-through: fresh from the server when
// possible, refreshing the cache on the way; from the cache when the
// network fails. A cache write failure only degrades offline behavior, so
// it is logged and swallowed.
type Interactor struct {
	api   libraryout.API
	cache libraryout.Cache
	log   *slog.Logger
}

func NewInteractor(api libraryout.API, cache libraryout.Cache, log *slog.Logger) libraryin.Usecase {
	return &Interactor{api: api, cache: cache, log: log}
}

func (i *Interactor) Meals(ctx context.Context) ([]domain.Meal, error) {
	return fetch(ctx, i, "meals", i.api.Meals, i.cache.SaveMeals, i.cache.Meals)
}

func (i *Interactor) Exercises(ctx context.Context) ([]domain.Exercise, error) {
	return fetch(ctx, i, "exercises", i.api.Exercises, i.cache.SaveExercises, i.cache.Exercises)
}

func (i *Interactor) Plans(ctx context.Context) ([]domain.Plan, error) {
	return fetch(ctx, i, "plans", i.api.Plans, i.cache.SavePlans, i.cache.Plans)
}

func (i *Interactor) WeeklyPlans(ctx context.Context) ([]domain.WeeklyPlan, error) {
	return fetch(ctx, i, "weekly plans", i.api.WeeklyPlans, i.cache.SaveWeeklyPlans, i.cache.WeeklyPlans)
}

func (i *Interactor) MealOptions(ctx context.Context, embedded []domain.Meal) ([]domain.Meal, error) {
	meals, err := i.Meals(ctx)
	if err != nil {
		return nil, err
	}
	return domain.MergeMeals(meals, embedded), nil
}

func (i *Interactor) ExerciseOptions(ctx context.Context, embedded []domain.Exercise) ([]domain.Exercise, error) {
	exercises, err := i.Exercises(ctx)
	if err != nil {
		return nil, err
	}
	return domain.MergeExercises(exercises, embedded), nil
}

func fetch[T any](
	ctx context.Context,
	i *Interactor,
	kind string,
	remote func(context.Context) ([]T, error),
	save func(context.Context, []T) error,
	cached func(context.Context) ([]T, error),
) ([]T, error) {
	items, err := remote(ctx)
	if err == nil {
		if saveErr := save(ctx, items); saveErr != nil {
			i.log.WarnContext(ctx, "library cache write failed", "kind", kind, "err", saveErr)
		}
		return items, nil
	}

	fallback, cacheErr := cached(ctx)
	if cacheErr != nil {
		return nil, err
	}
	i.log.WarnContext(ctx, "serving library from cache", "kind", kind, "err", err)
	return fallback, nil
}
