// Package scheduler packs a day's tasks into a conflict-free timeline
// of quarter-hour slots. Deadline-bound tasks are placed backward from
// their due time, the rest forward from "now", separated by mandatory
// breaks, inside a day-scoped window.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/taskmate-ai/taskmate/internal/profile"
	"github.com/taskmate-ai/taskmate/internal/task"
)

const (
	// forcedBreak is the fixed pause appended after every placed task,
	// independent of the profile's configured break length.
	forcedBreak = 5 * time.Minute

	// personalWindow caps personal schedules at six hours from now.
	personalWindow = 6 * time.Hour

	// defaultWorkEnd is used when the profile carries no end-of-day time.
	defaultWorkEnd = "17:00"
)

// Skip reasons reported on Result.Skipped.
const (
	ReasonNoSlotBeforeDeadline = "no free slot before deadline"
	ReasonWindowExhausted      = "day window exhausted"
)

// ScheduleType selects the shape of the day window.
type ScheduleType string

const (
	// TypeWork bounds the window at the profile's work_hours.end.
	TypeWork ScheduleType = "work-related"
	// TypePersonal bounds the window at six hours from now.
	TypePersonal ScheduleType = "personal"
)

// ParseScheduleType maps user input to a ScheduleType, defaulting to
// personal.
func ParseScheduleType(s string) ScheduleType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work", "work-related":
		return TypeWork
	default:
		return TypePersonal
	}
}

// Reorderer suggests a better ordering for a task list. It is an
// optional external collaborator: any error or empty response falls
// back to the original order and never fails the scheduling call.
type Reorderer interface {
	Reorder(ctx context.Context, tasks []task.Task, p *profile.Profile, scheduleType ScheduleType) ([]task.Task, error)
}

// Request is one scheduling call. Now is explicit so callers and tests
// control the clock.
type Request struct {
	Tasks   []task.Task
	Profile *profile.Profile
	Type    ScheduleType
	Now     time.Time
}

// PlacedTask is a task committed to a slot in the timeline.
type PlacedTask struct {
	Description string    `json:"description"`
	Start       time.Time `json:"-"`
	End         time.Time `json:"-"`
	StartTime   string    `json:"start_time"` // 12-hour clock, no leading zero
	EndTime     string    `json:"end_time"`
}

// SkippedTask records a task that could not be placed and why.
type SkippedTask struct {
	Description string
	Reason      string
}

// Result is the outcome of one scheduling call. An empty Placed list is
// a valid result meaning nothing could be scheduled.
type Result struct {
	Placed  []PlacedTask
	Skipped []SkippedTask

	// ReorderNote is set when the reorder collaborator failed and the
	// original task order was used. It is informational, never fatal.
	ReorderNote string
}

// Scheduler owns no state across calls; every Schedule invocation
// builds and discards its own interval set.
type Scheduler struct {
	reorderer Reorderer
}

// New creates a Scheduler. reorderer may be nil to skip reordering.
func New(reorderer Reorderer) *Scheduler {
	return &Scheduler{reorderer: reorderer}
}

// Schedule places the requested tasks inside the day window and returns
// the chronologically sorted result. No condition inside the call is
// fatal; everything degrades to a smaller or empty result.
func (s *Scheduler) Schedule(ctx context.Context, req Request) *Result {
	res := &Result{}
	if len(req.Tasks) == 0 {
		return res
	}

	startFrom := RoundUp(req.Now)
	winEnd, ok := windowEnd(req, startFrom)
	if !ok {
		// Workday already over: no schedule possible.
		return res
	}

	tasks := s.reorder(ctx, req, res)

	type deadlineTask struct {
		due time.Time
		t   task.Task
	}
	var (
		deadlined []deadlineTask
		normal    []task.Task
	)
	for _, t := range tasks {
		nt, err := t.Normalize()
		if err != nil {
			continue
		}
		if due, ok := resolveDeadline(nt, req.Now, winEnd); ok {
			deadlined = append(deadlined, deadlineTask{due: due, t: nt})
		} else {
			normal = append(normal, nt)
		}
	}

	// Earliest due first: tight deadlines claim their preferred late
	// slots before looser ones compete for the same region.
	sort.SliceStable(deadlined, func(i, j int) bool {
		return deadlined[i].due.Before(deadlined[j].due)
	})

	var occupied []interval
	for _, dt := range deadlined {
		dur := time.Duration(dt.t.Duration.Minutes()) * time.Minute
		start, end, ok := findBackwardSlot(dt.due, dur, merge(occupied), startFrom)
		if !ok {
			res.Skipped = append(res.Skipped, SkippedTask{
				Description: dt.t.Description,
				Reason:      ReasonNoSlotBeforeDeadline,
			})
			continue
		}
		occupied = withBreak(occupied, start, end)
		res.Placed = append(res.Placed, newPlacedTask(dt.t.Description, start, end))
	}

	occupied = merge(occupied)
	cursor := startFrom
	for _, iv := range occupied {
		if !iv.start.After(cursor) && cursor.Before(iv.end) {
			cursor = iv.end
		}
	}

	for i, t := range normal {
		dur := time.Duration(t.Duration.Minutes()) * time.Minute
		start, end, ok := findForwardSlot(cursor, dur, occupied, startFrom, winEnd)
		if !ok {
			skipRemaining(res, normal[i:])
			break
		}
		occupied = merge(withBreak(occupied, start, end))
		res.Placed = append(res.Placed, newPlacedTask(t.Description, start, end))
		cursor = end.Add(forcedBreak)
		if !cursor.Before(winEnd) {
			skipRemaining(res, normal[i+1:])
			break
		}
	}

	sort.Slice(res.Placed, func(i, j int) bool {
		return res.Placed[i].Start.Before(res.Placed[j].Start)
	})
	return res
}

// windowEnd resolves the feasible region's end. For work-related
// schedules the window ends at today's configured end-of-day time; if
// that is not strictly after startFrom there is no schedulable time
// left. Personal schedules get a fixed six-hour window.
func windowEnd(req Request, startFrom time.Time) (time.Time, bool) {
	if req.Type != TypeWork {
		return startFrom.Add(personalWindow), true
	}

	workEnd := defaultWorkEnd
	if req.Profile != nil && req.Profile.WorkHours.End != "" {
		workEnd = req.Profile.WorkHours.End
	}
	end, ok := clockOn(req.Now, workEnd)
	if !ok || !end.After(startFrom) {
		return time.Time{}, false
	}
	return end, true
}

// reorder consults the optional collaborator. Failures of any kind fall
// back to the original task list and are recorded on the result.
func (s *Scheduler) reorder(ctx context.Context, req Request, res *Result) []task.Task {
	if s.reorderer == nil {
		return req.Tasks
	}
	reordered, err := s.reorderer.Reorder(ctx, req.Tasks, req.Profile, req.Type)
	if err != nil {
		res.ReorderNote = fmt.Sprintf("task reordering unavailable (%v); keeping original order", err)
		return req.Tasks
	}
	if len(reordered) == 0 {
		return req.Tasks
	}
	return reordered
}

func skipRemaining(res *Result, rest []task.Task) {
	for _, t := range rest {
		res.Skipped = append(res.Skipped, SkippedTask{
			Description: t.Description,
			Reason:      ReasonWindowExhausted,
		})
	}
}

func newPlacedTask(desc string, start, end time.Time) PlacedTask {
	return PlacedTask{
		Description: desc,
		Start:       start,
		End:         end,
		StartTime:   formatClock(start),
		EndTime:     formatClock(end),
	}
}

// formatClock renders a 12-hour clock with no leading zero, e.g. "9:05 AM".
func formatClock(t time.Time) string {
	return t.Format("3:04 PM")
}
