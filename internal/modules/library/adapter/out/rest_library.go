package out

import (
	"context"
	"fmt"

	"fitterm/internal/modules/library/domain"
	libraryout "fitterm/internal/modules/library/port/out"
	"fitterm/internal/platform/httpx"
)

type RESTLibrary struct {
	client *httpx.Client
}

func NewRESTLibrary(client *httpx.Client) libraryout.API {
	return &RESTLibrary{client: client}
}

func (l *RESTLibrary) Meals(ctx context.Context) ([]domain.Meal, error) {
	var meals []domain.Meal
	if err := l.client.Get(ctx, "/user/meals", nil, &meals); err != nil {
		return nil, fmt.Errorf("load meals: %w", err)
	}
	return meals, nil
}

func (l *RESTLibrary) Exercises(ctx context.Context) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	if err := l.client.Get(ctx, "/user/exercises", nil, &exercises); err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}
	return exercises, nil
}

func (l *RESTLibrary) Plans(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	if err := l.client.Get(ctx, "/user/plans", nil, &plans); err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	return plans, nil
}

func (l *RESTLibrary) WeeklyPlans(ctx context.Context) ([]domain.WeeklyPlan, error) {
	var plans []domain.WeeklyPlan
	if err := l.client.Get(ctx, "/user/weekly-plans", nil, &plans); err != nil {
		return nil, fmt.Errorf("load weekly plans: %w", err)
	}
	return plans, nil
}
