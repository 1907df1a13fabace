package scheduler

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taskmate-ai/taskmate/internal/task"
)

// deadlinePhrase matches constraints like "before 9 pm" or "by 8:30pm"
// anywhere in a task description.
var deadlinePhrase = regexp.MustCompile(`(?i)\b(?:before|by)\s*(\d{1,2})(?:\s*:\s*(\d{2}))?\s*(am|pm)\b`)

// resolveDeadline derives an absolute due time for t on the day of the
// scheduling call. The structured HH:MM field wins; otherwise the
// description is scanned for a before/by phrase. Whichever is found is
// clipped to dayEnd so no task requires placement beyond the window.
func resolveDeadline(t task.Task, day, dayEnd time.Time) (time.Time, bool) {
	if t.HasDeadline() {
		if due, ok := clockOn(day, t.Deadline); ok {
			return clipTo(due, dayEnd), true
		}
	}
	if due, ok := phraseDeadline(t.Description, day); ok {
		return clipTo(due, dayEnd), true
	}
	return time.Time{}, false
}

// phraseDeadline parses a before/by phrase into a time on the given day.
// Hour 12 is treated as 0 before the pm offset, so "12 am" is midnight
// and "12 pm" is noon.
func phraseDeadline(text string, day time.Time) (time.Time, bool) {
	m := deadlinePhrase.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour == 12 {
		hour = 0
	}
	if strings.EqualFold(m[3], "pm") {
		hour += 12
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), true
}

// clockOn combines a "HH:MM" clock string with the date of day.
func clockOn(day time.Time, hhmm string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), true
}

func clipTo(t, limit time.Time) time.Time {
	if t.After(limit) {
		return limit
	}
	return t
}
