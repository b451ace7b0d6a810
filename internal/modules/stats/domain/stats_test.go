package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	librarydomain "fitterm/internal/modules/library/domain"
	progressdomain "fitterm/internal/modules/progress/domain"
	"fitterm/internal/modules/stats/domain"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestBMIAndCategory(t *testing.T) {
	t.Parallel()
	bmi, err := domain.BMI(175, 70)
	if err != nil {
		t.Fatalf("bmi: %v", err)
	}
	if !almost(bmi, 22.86) {
		t.Fatalf("bmi = %.2f", bmi)
	}
	if got := domain.BMICategory(bmi); got != "Normal weight" {
		t.Fatalf("category = %s", got)
	}

	if _, err := domain.BMI(0, 70); err == nil {
		t.Fatalf("zero height must error")
	}
	if _, err := domain.BMI(175, 500); err == nil {
		t.Fatalf("implausible weight must error")
	}
}

func TestBMRMifflinStJeor(t *testing.T) {
	t.Parallel()
	male, err := domain.BMR("male", 30, 175, 70)
	if err != nil {
		t.Fatalf("bmr: %v", err)
	}
	// 10*70 + 6.25*175 - 5*30 + 5
	if !almost(male, 1648.75) {
		t.Fatalf("male bmr = %.2f", male)
	}
	female, err := domain.BMR("Female", 30, 175, 70)
	if err != nil {
		t.Fatalf("bmr: %v", err)
	}
	if !almost(male-female, 166) {
		t.Fatalf("sex offset = %.2f", male-female)
	}
	if _, err := domain.BMR("male", 0, 175, 70); err == nil {
		t.Fatalf("zero age must error")
	}
}

func TestTDEEFactors(t *testing.T) {
	t.Parallel()
	if got := domain.TDEE(1600, "moderate"); !almost(got, 2480) {
		t.Fatalf("moderate tdee = %.2f", got)
	}
	if got := domain.TDEE(1600, "unknown level"); !almost(got, 1920) {
		t.Fatalf("fallback tdee = %.2f", got)
	}
}

func TestSummarizeCountsOnlyCompletedAndResolvesBothShapes(t *testing.T) {
	t.Parallel()
	var entry progressdomain.Entry
	payload := `{
		"date": "2024-06-12",
		"meals": [
			{"time":"08:00","mealId":{"_id":"m1","name":"Oatmeal","calories":350},"completed":true},
			{"time":"12:00","mealId":"m2","completed":true},
			{"time":"19:00","mealId":"m3","completed":false}
		],
		"exercises": [
			{"time":"18:00","exerciseId":"e1","completed":true},
			{"time":"20:00","exerciseId":"unknown","completed":true}
		]
	}`
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		t.Fatalf("build entry: %v", err)
	}

	summary := domain.Summarize(entry,
		map[string]librarydomain.Meal{"m2": {ID: "m2", Calories: 600}, "m3": {ID: "m3", Calories: 900}},
		map[string]librarydomain.Exercise{"e1": {ID: "e1", CaloriesBurned: 250}},
	)

	if summary.CompletedMeals != 2 || summary.TotalMeals != 3 {
		t.Fatalf("meal counts = %d/%d", summary.CompletedMeals, summary.TotalMeals)
	}
	// 350 populated + 600 from the table; the incomplete 900 never counts.
	if !almost(summary.ConsumedKcal, 950) {
		t.Fatalf("consumed = %.2f", summary.ConsumedKcal)
	}
	// The unknown exercise ref counts as completed but contributes nothing.
	if summary.CompletedExs != 2 || !almost(summary.BurnedKcal, 250) {
		t.Fatalf("exercises = %d burned %.2f", summary.CompletedExs, summary.BurnedKcal)
	}
	if !almost(summary.NetKcal(), 700) {
		t.Fatalf("net = %.2f", summary.NetKcal())
	}
}
