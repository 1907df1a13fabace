// Package profile defines user scheduling preferences and their storage
// contract.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrNotFound          = errors.New("profile not found")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("work end must be after work start")
	ErrInvalidBreak      = errors.New("break duration must be between 5 and 60 minutes")
)

// WorkHours is the user's daily working window.
type WorkHours struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// EnergyLevels describes how energetic the user tends to be across the day.
type EnergyLevels struct {
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// Profile holds a user's scheduling preferences. The slot packer reads
// only WorkHours.End; the remaining fields are forwarded to the reorder
// service for energy-aware ordering.
type Profile struct {
	WorkHours        WorkHours    `json:"work_hours"`
	BreakDurationMin int          `json:"break_duration_min"`
	EnergyLevels     EnergyLevels `json:"energy_levels"`
}

// Default returns a profile with sensible starting values.
func Default() *Profile {
	return &Profile{
		WorkHours:        WorkHours{Start: "09:00", End: "17:00"},
		BreakDurationMin: 15,
		EnergyLevels:     EnergyLevels{Morning: "high", Afternoon: "medium", Evening: "low"},
	}
}

// Validate checks that the profile is internally consistent.
func (p *Profile) Validate() error {
	if err := validateClock(p.WorkHours.Start, "work start"); err != nil {
		return err
	}
	if err := validateClock(p.WorkHours.End, "work end"); err != nil {
		return err
	}
	if p.WorkHours.End <= p.WorkHours.Start {
		return ErrEndBeforeStart
	}
	if p.BreakDurationMin < 5 || p.BreakDurationMin > 60 {
		return ErrInvalidBreak
	}
	for _, level := range []string{p.EnergyLevels.Morning, p.EnergyLevels.Afternoon, p.EnergyLevels.Evening} {
		switch level {
		case "low", "medium", "high":
		default:
			return fmt.Errorf("energy level must be low, medium or high, got %q", level)
		}
	}
	return nil
}

// WorkEndOn returns the work_hours.end clock combined with the date of day.
func (p *Profile) WorkEndOn(day time.Time) (time.Time, bool) {
	parsed, err := time.Parse("15:04", p.WorkHours.End)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), true
}

func validateClock(s, field string) error {
	if len(s) != 5 {
		return fmt.Errorf("%s: %w (got %q)", field, ErrInvalidTimeFormat, s)
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%s: %w (got %q)", field, ErrInvalidTimeFormat, s)
	}
	return nil
}

// Repository persists profiles keyed by user id.
type Repository interface {
	// Save stores or replaces the profile for the given user.
	Save(ctx context.Context, userID string, p *Profile) error

	// Load retrieves the profile for the given user.
	// Returns ErrNotFound if the user has no stored profile.
	Load(ctx context.Context, userID string) (*Profile, error)
}
