package out

import (
	"context"

	"fitterm/internal/modules/library/domain"
)

// API is the server's library surface.
type API interface {
	Meals(ctx context.Context) ([]domain.Meal, error)
	Exercises(ctx context.Context) ([]domain.Exercise, error)
	Plans(ctx context.Context) ([]domain.Plan, error)
	WeeklyPlans(ctx context.Context) ([]domain.WeeklyPlan, error)
}

// Cache keeps the last successfully fetched lists so the picker still works
// when the network doesn't.
type Cache interface {
	SaveMeals(ctx context.Context, meals []domain.Meal) error
	Meals(ctx context.Context) ([]domain.Meal, error)
	SaveExercises(ctx context.Context, exercises []domain.Exercise) error
	Exercises(ctx context.Context) ([]domain.Exercise, error)
	SavePlans(ctx context.Context, plans []domain.Plan) error
	Plans(ctx context.Context) ([]domain.Plan, error)
	SaveWeeklyPlans(ctx context.Context, plans []domain.WeeklyPlan) error
	WeeklyPlans(ctx context.Context) ([]domain.WeeklyPlan, error)
	Close() error
}
