package in

import (
	"context"
	"time"

	librarydomain "fitterm/internal/modules/library/domain"
	"fitterm/internal/modules/progress/domain"
	"fitterm/internal/modules/progress/dto"
)

type Usecase interface {
	// Week loads the Monday-start window containing ref.
	Week(ctx context.Context, ref time.Time) (dto.WeekOutput, error)

	// SaveDay upserts one day's entry, replacing it wholesale.
	SaveDay(ctx context.Context, input dto.SaveDayInput) (domain.Entry, error)

	// ValidateToggle runs every toggle precondition against the client-held
	// week without touching the network; callers must consult it before any
	// optimistic mutation.
	ValidateToggle(entries []domain.Entry, day time.Time, kind domain.ItemKind, index int) error

	// Toggle flips completion server-side and returns the authoritative
	// entry for that day.
	Toggle(ctx context.Context, input dto.ToggleInput) (domain.Entry, error)

	// ApplyPlan copies plan's template for day's weekday into day's entry.
	ApplyPlan(ctx context.Context, day time.Time, plan librarydomain.WeeklyPlan, keepNotes string) (domain.Entry, error)
}
