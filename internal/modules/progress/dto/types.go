package dto

import (
	"time"

	"fitterm/internal/modules/progress/domain"
)

type WeekOutput struct {
	Start   time.Time
	Days    [7]time.Time
	Entries []domain.Entry
}

// SaveDayInput replaces the whole day: the server treats the save as
// create-or-replace, never a partial merge.
type SaveDayInput struct {
	Day       time.Time
	Meals     []domain.MealSlot
	Exercises []domain.ExerciseSlot
	Notes     string
}

type ToggleInput struct {
	Day   time.Time
	Kind  domain.ItemKind
	Index int
}
