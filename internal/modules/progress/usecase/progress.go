package usecase

import (
	"context"
	"time"

	librarydomain "fitterm/internal/modules/library/domain"
	"fitterm/internal/modules/progress/domain"
	"fitterm/internal/modules/progress/dto"
	progressin "fitterm/internal/modules/progress/port/in"
	progressout "fitterm/internal/modules/progress/port/out"
	"fitterm/internal/modules/progress/service"
	"fitterm/internal/platform/dates"
)

type Interactor struct {
	svc   *service.ProgressService
	store progressout.Store
}

func NewInteractor(svc *service.ProgressService, store progressout.Store) progressin.Usecase {
	return &Interactor{svc: svc, store: store}
}

func (i *Interactor) Week(ctx context.Context, ref time.Time) (dto.WeekOutput, error) {
	start := dates.WeekStart(ref)
	from, to := dates.WeekRange(start)
	entries, err := i.store.Week(ctx, from, to)
	if err != nil {
		return dto.WeekOutput{}, err
	}
	return dto.WeekOutput{
		Start:   start,
		Days:    dates.WeekDays(start),
		Entries: entries,
	}, nil
}

func (i *Interactor) SaveDay(ctx context.Context, input dto.SaveDayInput) (domain.Entry, error) {
	entry := domain.Entry{
		Date:      domain.NewFlexDate(input.Day),
		Meals:     input.Meals,
		Exercises: input.Exercises,
		Notes:     input.Notes,
	}
	if entry.Meals == nil {
		entry.Meals = []domain.MealSlot{}
	}
	if entry.Exercises == nil {
		entry.Exercises = []domain.ExerciseSlot{}
	}
	return i.store.SaveDay(ctx, entry)
}

func (i *Interactor) ValidateToggle(entries []domain.Entry, day time.Time, kind domain.ItemKind, index int) error {
	return i.svc.ValidateToggle(entries, day, kind, index)
}

func (i *Interactor) Toggle(ctx context.Context, input dto.ToggleInput) (domain.Entry, error) {
	return i.store.ToggleCompletion(ctx, dates.Key(input.Day), input.Kind, input.Index)
}

// ApplyPlan replaces day's slots with the plan's template for that weekday.
// Notes are the only part of an existing entry that survives, passed in by
// the caller; everything else follows the whole-day upsert semantics.
func (i *Interactor) ApplyPlan(ctx context.Context, day time.Time, plan librarydomain.WeeklyPlan, keepNotes string) (domain.Entry, error) {
	input := dto.SaveDayInput{Day: day, Notes: keepNotes}
	for _, pd := range plan.Days {
		if pd.DayOfWeek != int(day.Weekday()) {
			continue
		}
		for _, m := range pd.Meals {
			input.Meals = append(input.Meals, domain.MealSlot{
				Time: m.Time,
				Meal: domain.NewRef[librarydomain.Meal](m.MealID),
			})
		}
		for _, e := range pd.Exercises {
			input.Exercises = append(input.Exercises, domain.ExerciseSlot{
				Time:     e.Time,
				Exercise: domain.NewRef[librarydomain.Exercise](e.ExerciseID),
			})
		}
		break
	}
	return i.SaveDay(ctx, input)
}
