// Package domain holds the reference entities the tracker schedules:
// meals and exercises from the user's library, and the plans that bundle
// them. They are fetched from the server and treated as read-mostly lists.
package domain

// Meal is one library meal with its nutrition snapshot.
type Meal struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Description string  `json:"description,omitempty"`
}

// Exercise is one library exercise.
type Exercise struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	CaloriesBurned float64 `json:"caloriesBurned"`
	DurationMin    int     `json:"duration"`
	Description    string  `json:"description,omitempty"`
}

// Plan is a single-day plan template.
type Plan struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// WeeklyPlan is a seven-day template; applying it to a calendar day copies
// the matching weekday's slots into that day's entry.
type WeeklyPlan struct {
	ID   string    `json:"_id"`
	Name string    `json:"name"`
	Days []PlanDay `json:"days"`
}

// PlanDay's DayOfWeek uses the server's convention: 0 is Sunday.
type PlanDay struct {
	DayOfWeek int            `json:"dayOfWeek"`
	Meals     []PlanMeal     `json:"meals"`
	Exercises []PlanExercise `json:"exercises"`
}

type PlanMeal struct {
	Time   string `json:"time"`
	MealID string `json:"mealId"`
}

type PlanExercise struct {
	Time       string `json:"time"`
	ExerciseID string `json:"exerciseId"`
}

// MergeMeals returns the library list plus any embedded meal whose id is
// not already present. An entry saved from a shared plan can reference
// meals outside the user's own library; the edit options must not silently
// drop them.
func MergeMeals(library, embedded []Meal) []Meal {
	return merge(library, embedded, func(m Meal) string { return m.ID })
}

// MergeExercises is the exercise counterpart of MergeMeals.
func MergeExercises(library, embedded []Exercise) []Exercise {
	return merge(library, embedded, func(e Exercise) string { return e.ID })
}

func merge[T any](base, extra []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(base))
	out := make([]T, 0, len(base)+len(extra))
	for _, item := range base {
		seen[key(item)] = struct{}{}
		out = append(out, item)
	}
	for _, item := range extra {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}
