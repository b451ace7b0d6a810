// Package domain models one calendar day of planned and completed meals and
// exercises. The server keeps at most one entry per (user, day); the date is
// persisted as UTC midnight of the intended calendar day and may arrive as
// an ISO string or a timestamp depending on the endpoint.
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	librarydomain "fitterm/internal/modules/library/domain"
	"fitterm/internal/platform/dates"
)

// ItemKind doubles as the wire value for the toggle endpoint's "type" field.
type ItemKind string

const (
	KindMeal     ItemKind = "meal"
	KindExercise ItemKind = "exercise"
)

// Entry is one user's one calendar day.
type Entry struct {
	ID        string         `json:"_id,omitempty"`
	Date      FlexDate       `json:"date"`
	Meals     []MealSlot     `json:"meals"`
	Exercises []ExerciseSlot `json:"exercises"`
	Notes     string         `json:"notes,omitempty"`
}

// MealSlot schedules a meal at a wall-clock time of day ("HH:MM").
type MealSlot struct {
	Time      string                   `json:"time"`
	Meal      Ref[librarydomain.Meal]  `json:"mealId"`
	Completed bool                     `json:"completed"`
}

// ExerciseSlot schedules an exercise at a wall-clock time of day.
type ExerciseSlot struct {
	Time      string                      `json:"time"`
	Exercise  Ref[librarydomain.Exercise] `json:"exerciseId"`
	Completed bool                        `json:"completed"`
}

// Key returns the entry's canonical day key.
func (e Entry) Key() string {
	return e.Date.Key()
}

// EmbeddedMeals returns the populated meal objects carried inside the entry,
// for merging into the edit options.
func (e Entry) EmbeddedMeals() []librarydomain.Meal {
	var out []librarydomain.Meal
	for _, slot := range e.Meals {
		if m, ok := slot.Meal.Data(); ok {
			out = append(out, m)
		}
	}
	return out
}

// EmbeddedExercises returns the populated exercise objects carried inside
// the entry.
func (e Entry) EmbeddedExercises() []librarydomain.Exercise {
	var out []librarydomain.Exercise
	for _, slot := range e.Exercises {
		if ex, ok := slot.Exercise.Data(); ok {
			out = append(out, ex)
		}
	}
	return out
}

// IndexFor returns the position of the entry whose date normalizes to the
// same day key as day. At most one entry exists per day, so the first match
// is the only match.
func IndexFor(entries []Entry, day time.Time) (int, bool) {
	key := dates.Key(day)
	for i, e := range entries {
		if e.Key() == key {
			return i, true
		}
	}
	return 0, false
}

// FindEntry is IndexFor returning the entry itself.
func FindEntry(entries []Entry, day time.Time) (Entry, bool) {
	if i, ok := IndexFor(entries, day); ok {
		return entries[i], true
	}
	return Entry{}, false
}

// FlexDate is a calendar-day value that survives the server's two date
// encodings. When it arrives as a string the original text is kept so the
// day key can be cut out of it directly; reparsing an ISO string into a
// local time would shift the day west of UTC.
type FlexDate struct {
	raw string
	t   time.Time
}

// NewFlexDate builds a FlexDate from a locally constructed day.
func NewFlexDate(t time.Time) FlexDate {
	return FlexDate{t: t}
}

// Key returns the canonical "YYYY-MM-DD" key.
func (d FlexDate) Key() string {
	if d.raw != "" {
		return dates.KeyFromString(d.raw)
	}
	return dates.Key(d.t)
}

func (d FlexDate) IsZero() bool {
	return d.raw == "" && d.t.IsZero()
}

func (d *FlexDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		d.raw = s
		if t, perr := time.Parse(time.RFC3339, s); perr == nil {
			d.t = t
		}
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return fmt.Errorf("date is neither a string nor a timestamp: %w", err)
	}
	d.t = t
	return nil
}

// MarshalJSON emits the day key; the save endpoint expects "YYYY-MM-DD".
func (d FlexDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Key())
}
