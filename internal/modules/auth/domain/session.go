// Package domain models the authenticated session: the bearer token the
// shared HTTP client attaches to every request, plus the user profile the
// stats screens need.
package domain

type User struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Sex           string  `json:"gender,omitempty"`
	Age           int     `json:"age,omitempty"`
	HeightCm      float64 `json:"height,omitempty"`
	WeightKg      float64 `json:"weight,omitempty"`
	ActivityLevel string  `json:"activityLevel,omitempty"`
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
