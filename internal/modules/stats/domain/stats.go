// Package domain holds the tracker's arithmetic: body metrics from the
// user profile and calorie totals over a day's completed items.
package domain

import (
	"errors"
	"strings"

	librarydomain "fitterm/internal/modules/library/domain"
	progressdomain "fitterm/internal/modules/progress/domain"
)

// BMI expects height in centimeters and weight in kilograms.
func BMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// BMR is the Mifflin-St Jeor resting rate in kcal/day.
func BMR(sex string, age int, heightCm, weightKg float64) (float64, error) {
	if age <= 0 || age > 130 {
		return 0, errors.New("age out of plausible range")
	}
	if _, err := BMI(heightCm, weightKg); err != nil {
		return 0, err
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.EqualFold(sex, "female") {
		return base - 161, nil
	}
	return base + 5, nil
}

// TDEE scales a BMR by the profile's activity level. Unknown levels fall
// back to sedentary.
func TDEE(bmr float64, activityLevel string) float64 {
	factors := map[string]float64{
		"sedentary": 1.2,
		"light":     1.375,
		"moderate":  1.55,
		"active":    1.725,
		"athlete":   1.9,
	}
	factor, ok := factors[strings.ToLower(activityLevel)]
	if !ok {
		factor = 1.2
	}
	return bmr * factor
}

// DaySummary totals one day. Only completed items count; references are
// resolved through the populated object when present, the lookup tables
// otherwise, and contribute nothing when neither knows them.
type DaySummary struct {
	ConsumedKcal   float64
	BurnedKcal     float64
	CompletedMeals int
	TotalMeals     int
	CompletedExs   int
	TotalExs       int
}

func (s DaySummary) NetKcal() float64 {
	return s.ConsumedKcal - s.BurnedKcal
}

func Summarize(
	entry progressdomain.Entry,
	meals map[string]librarydomain.Meal,
	exercises map[string]librarydomain.Exercise,
) DaySummary {
	var s DaySummary
	s.TotalMeals = len(entry.Meals)
	s.TotalExs = len(entry.Exercises)
	for _, slot := range entry.Meals {
		if !slot.Completed {
			continue
		}
		s.CompletedMeals++
		if meal, ok := progressdomain.DataOf(slot.Meal, meals); ok {
			s.ConsumedKcal += meal.Calories
		}
	}
	for _, slot := range entry.Exercises {
		if !slot.Completed {
			continue
		}
		s.CompletedExs++
		if ex, ok := progressdomain.DataOf(slot.Exercise, exercises); ok {
			s.BurnedKcal += ex.CaloriesBurned
		}
	}
	return s
}
