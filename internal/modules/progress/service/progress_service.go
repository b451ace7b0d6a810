package service

import (
	"fmt"
	"time"

	"fitterm/internal/modules/progress/domain"
	"fitterm/internal/platform/clock"
	"fitterm/internal/platform/dates"
	apperrors "fitterm/internal/platform/errors"
)

// ProgressService holds the completion gate: the rules deciding whether a
// scheduled item may be marked done. Unchecking is never gated.
type ProgressService struct {
	clock clock.Clock
}

func NewProgressService(clock clock.Clock) *ProgressService {
	return &ProgressService{clock: clock}
}

// CanComplete reports whether an incomplete item scheduled at "HH:MM" on
// day may transition to complete now. Past days are always allowed (a
// historical correction), future days never are, and today requires the
// scheduled wall-clock time to have arrived (non-strict).
func (s *ProgressService) CanComplete(day time.Time, scheduled string) error {
	now := s.clock.Now()
	today := dates.DayStart(now)
	d := dates.DayStart(day)

	switch {
	case d.Before(today):
		return nil
	case d.After(today):
		return apperrors.ErrFutureDay
	}

	if scheduled == "" {
		return apperrors.ErrNoScheduledTime
	}
	parsed, err := time.Parse("15:04", scheduled)
	if err != nil {
		// An unparseable schedule is treated like a missing one.
		return apperrors.ErrNoScheduledTime
	}
	at := time.Date(today.Year(), today.Month(), today.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if now.Before(at) {
		return fmt.Errorf("%w (scheduled for %s)", apperrors.ErrTooEarly, scheduled)
	}
	return nil
}

// ValidateToggle checks every precondition of a completion toggle against
// the client-held week, before any optimistic mutation: an entry must exist
// for the day, the index must address an item, and an incomplete→complete
// transition must pass the gate.
func (s *ProgressService) ValidateToggle(entries []domain.Entry, day time.Time, kind domain.ItemKind, index int) error {
	i, ok := domain.IndexFor(entries, day)
	if !ok {
		return apperrors.ErrNoEntry
	}
	entry := entries[i]

	switch kind {
	case domain.KindMeal:
		if index < 0 || index >= len(entry.Meals) {
			return apperrors.ErrIndexOutOfRange
		}
		if !entry.Meals[index].Completed {
			return s.CanComplete(day, entry.Meals[index].Time)
		}
	case domain.KindExercise:
		if index < 0 || index >= len(entry.Exercises) {
			return apperrors.ErrIndexOutOfRange
		}
		if !entry.Exercises[index].Completed {
			return s.CanComplete(day, entry.Exercises[index].Time)
		}
	default:
		return fmt.Errorf("%w: unknown item kind %q", apperrors.ErrInvalidInput, kind)
	}
	return nil
}
