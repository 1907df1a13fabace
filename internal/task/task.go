// Package task defines the core domain types for taskmate.
package task

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Validation errors.
var (
	ErrEmptyDescription = errors.New("description cannot be empty")
)

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority coerces a string to a valid Priority.
// Unknown values default to medium, matching the upstream parser contract.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// Energy represents how much focus a task demands.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// ParseEnergy coerces a string to a valid Energy, defaulting to medium.
func ParseEnergy(s string) Energy {
	switch Energy(strings.ToLower(strings.TrimSpace(s))) {
	case EnergyLow:
		return EnergyLow
	case EnergyHigh:
		return EnergyHigh
	default:
		return EnergyMedium
	}
}

// Duration bounds, in minutes.
const (
	MinDuration     = 5
	MaxDuration     = 240
	DefaultDuration = 30
)

// Duration is a task length in minutes. It accepts JSON numbers, numeric
// strings, and the labels "short" (15), "medium" (30) and "long" (60).
type Duration int

// UnmarshalJSON implements json.Unmarshaler. Unparseable values fall
// back to DefaultDuration rather than failing the whole task list.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*d = Duration(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = DefaultDuration
		return nil
	}
	*d = parseDurationLabel(s)
	return nil
}

func parseDurationLabel(s string) Duration {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return 15
	case "medium":
		return 30
	case "long":
		return 60
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return Duration(n)
	}
	return DefaultDuration
}

// Clamp returns the duration bounded to [MinDuration, MaxDuration].
// A zero duration (field absent) becomes DefaultDuration.
func (d Duration) Clamp() Duration {
	if d == 0 {
		return DefaultDuration
	}
	if d < MinDuration {
		return MinDuration
	}
	if d > MaxDuration {
		return MaxDuration
	}
	return d
}

// Minutes returns the clamped duration as an int.
func (d Duration) Minutes() int {
	return int(d.Clamp())
}

// clockRe guards the structured deadline format ("HH:MM", 24-hour).
var clockRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Task is one unit of work to be scheduled within a single day.
type Task struct {
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Energy      Energy   `json:"energy"`
	Duration    Duration `json:"duration"`
	Deadline    string   `json:"deadline,omitempty"` // "HH:MM" 24-hour, empty if none
}

// Normalize returns a copy of t with every field coerced to a valid
// value. Tasks arrive from an LLM, so nothing is trusted blindly:
// priority and energy fall back to medium, the duration is clamped, and
// a malformed deadline is discarded. An empty description is the only
// fatal condition.
func (t Task) Normalize() (Task, error) {
	t.Description = strings.TrimSpace(t.Description)
	if t.Description == "" {
		return Task{}, ErrEmptyDescription
	}

	t.Priority = ParsePriority(string(t.Priority))
	t.Energy = ParseEnergy(string(t.Energy))
	t.Duration = t.Duration.Clamp()

	t.Deadline = strings.TrimSpace(t.Deadline)
	if t.Deadline != "" && !clockRe.MatchString(t.Deadline) {
		t.Deadline = ""
	}

	return t, nil
}

// HasDeadline returns true if the task carries a structured deadline.
func (t Task) HasDeadline() bool {
	return clockRe.MatchString(t.Deadline)
}
