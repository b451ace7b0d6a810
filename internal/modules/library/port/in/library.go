package in

import (
	"context"

	"fitterm/internal/modules/library/domain"
)

type Usecase interface {
	Meals(ctx context.Context) ([]domain.Meal, error)
	Exercises(ctx context.Context) ([]domain.Exercise, error)
	Plans(ctx context.Context) ([]domain.Plan, error)
	WeeklyPlans(ctx context.Context) ([]domain.WeeklyPlan, error)

	// MealOptions returns the selectable meals for editing a day: the
	// library list plus the day's embedded items the list doesn't know.
	MealOptions(ctx context.Context, embedded []domain.Meal) ([]domain.Meal, error)
	ExerciseOptions(ctx context.Context, embedded []domain.Exercise) ([]domain.Exercise, error)
}
