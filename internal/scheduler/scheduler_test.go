package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskmate-ai/taskmate/internal/profile"
	"github.com/taskmate-ai/taskmate/internal/task"
)

func monday(hh, mm int) time.Time {
	return time.Date(2025, 1, 6, hh, mm, 0, 0, time.Local)
}

func placements(res *Result) []string {
	var out []string
	for _, p := range res.Placed {
		out = append(out, p.Start.Format("15:04")+"-"+p.End.Format("15:04"))
	}
	return out
}

func assertPlacements(t *testing.T, res *Result, want ...string) {
	t.Helper()
	got := placements(res)
	if len(got) != len(want) {
		t.Fatalf("placed %d tasks %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("placement %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSchedule_ForwardFill(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "reply to emails", Duration: 30},
			{Description: "draft proposal", Duration: 45},
		},
		Type: TypePersonal,
		Now:  monday(9, 0),
	})

	// The break after the first task pushes the cursor to 09:35, which
	// quantizes up to the 09:45 grid mark.
	assertPlacements(t, res, "09:00-09:30", "09:45-10:30")
	if len(res.Skipped) != 0 {
		t.Errorf("unexpected skipped tasks: %v", res.Skipped)
	}
}

func TestSchedule_DeadlineLatestFit(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "standup prep", Duration: 30, Deadline: "10:00"},
		},
		Type: TypePersonal,
		Now:  monday(9, 0),
	})

	assertPlacements(t, res, "09:30-10:00")
}

func TestSchedule_CompetingDeadlines(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "review PR", Duration: 30, Deadline: "10:00"},
			{Description: "send agenda", Duration: 15, Deadline: "09:30"},
		},
		Type: TypePersonal,
		Now:  monday(8, 0),
	})

	// Earliest deadline claims 09:15-09:30; its trailing break blocks the
	// 10:00 task's preferred slots, pushing it to 08:45-09:15.
	assertPlacements(t, res, "08:45-09:15", "09:15-09:30")

	for _, p := range res.Placed {
		switch p.Description {
		case "send agenda":
			if p.End.After(monday(9, 30)) {
				t.Errorf("send agenda ends %s, after its deadline", p.End.Format("15:04"))
			}
		case "review PR":
			if p.End.After(monday(10, 0)) {
				t.Errorf("review PR ends %s, after its deadline", p.End.Format("15:04"))
			}
		}
	}
}

func TestSchedule_DeadlineUnplaceable(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "send agenda", Duration: 15, Deadline: "09:30"},
			{Description: "review PR", Duration: 30, Deadline: "10:00"},
		},
		Type: TypePersonal,
		Now:  monday(9, 0),
	})

	// With the window opening at 09:00 there is no room left for the
	// 30-minute task once 09:15-09:35 is busy.
	assertPlacements(t, res, "09:15-09:30")
	if len(res.Skipped) != 1 {
		t.Fatalf("skipped = %v, want one entry", res.Skipped)
	}
	if res.Skipped[0].Description != "review PR" || res.Skipped[0].Reason != ReasonNoSlotBeforeDeadline {
		t.Errorf("skipped = %+v", res.Skipped[0])
	}
}

func TestSchedule_WindowExhausted(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "long workshop", Duration: 60},
			{Description: "quick sync", Duration: 15},
		},
		Type: TypeWork,
		Profile: &profile.Profile{
			WorkHours: profile.WorkHours{Start: "09:00", End: "17:00"},
		},
		Now: monday(16, 30),
	})

	// Only 30 minutes remain; the 60-minute task cannot fit, and the
	// forward phase stops there.
	if len(res.Placed) != 0 {
		t.Errorf("placed = %v, want none", placements(res))
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("skipped = %v, want both tasks", res.Skipped)
	}
	for _, sk := range res.Skipped {
		if sk.Reason != ReasonWindowExhausted {
			t.Errorf("skip reason = %q, want %q", sk.Reason, ReasonWindowExhausted)
		}
	}
}

func TestSchedule_MixedDeadlineAndNormal(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "review code", Duration: 30},
			{Description: "send invoice by 10 am", Duration: 30},
		},
		Type: TypeWork,
		Profile: &profile.Profile{
			WorkHours: profile.WorkHours{Start: "09:00", End: "17:00"},
		},
		Now: monday(9, 0),
	})

	assertPlacements(t, res, "09:00-09:30", "09:30-10:00")

	// Chronological order, and the deadline task keeps its phrase slot.
	if res.Placed[0].Description != "review code" {
		t.Errorf("first placed = %q, want review code", res.Placed[0].Description)
	}
	if res.Placed[1].Description != "send invoice by 10 am" {
		t.Errorf("second placed = %q, want the deadline task", res.Placed[1].Description)
	}
}

func TestSchedule_WorkdayOver(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{{Description: "anything", Duration: 15}},
		Type:  TypeWork,
		Profile: &profile.Profile{
			WorkHours: profile.WorkHours{Start: "09:00", End: "17:00"},
		},
		Now: monday(18, 0),
	})

	if len(res.Placed) != 0 || len(res.Skipped) != 0 {
		t.Errorf("expected an empty result after hours, got %+v", res)
	}
}

func TestSchedule_DefaultWorkEnd(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{{Description: "anything", Duration: 15}},
		Type:  TypeWork,
		Now:   monday(17, 30), // past the 17:00 fallback end
	})

	if len(res.Placed) != 0 {
		t.Errorf("expected no placements without a profile after 17:00, got %v", placements(res))
	}
}

func TestSchedule_DeadlineClippedToWindow(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "wrap up before 11 pm", Duration: 30},
		},
		Type: TypePersonal,
		Now:  monday(9, 0),
	})

	// Personal window ends at 15:00; the 23:00 phrase is clipped there
	// and the task backward-fills against the clipped due time.
	assertPlacements(t, res, "14:30-15:00")
}

func TestSchedule_EmptyTaskList(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{Now: monday(9, 0)})
	if len(res.Placed) != 0 || len(res.Skipped) != 0 || res.ReorderNote != "" {
		t.Errorf("expected zero-value result, got %+v", res)
	}
}

func TestSchedule_OutputFormat(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{{Description: "afternoon read", Duration: 30, Deadline: "14:00"}},
		Type:  TypePersonal,
		Now:   monday(9, 0),
	})

	if len(res.Placed) != 1 {
		t.Fatalf("placed = %v", placements(res))
	}
	p := res.Placed[0]
	if p.StartTime != "1:30 PM" || p.EndTime != "2:00 PM" {
		t.Errorf("clock strings = %q-%q, want 1:30 PM-2:00 PM", p.StartTime, p.EndTime)
	}
}

func TestSchedule_NoOverlaps(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "a", Duration: 45, Deadline: "12:00"},
			{Description: "b", Duration: 30, Deadline: "11:00"},
			{Description: "c", Duration: 60},
			{Description: "d", Duration: 15},
			{Description: "e", Duration: 30},
		},
		Type: TypePersonal,
		Now:  monday(8, 57),
	})

	for i := 0; i < len(res.Placed); i++ {
		p := res.Placed[i]
		if !p.Start.Before(p.End) {
			t.Errorf("%q has non-positive length %s-%s", p.Description,
				p.Start.Format("15:04"), p.End.Format("15:04"))
		}
		for _, m := range []int{p.Start.Minute(), p.End.Minute()} {
			if m%15 != 0 {
				t.Errorf("%q boundary not on the quarter-hour grid: %d", p.Description, m)
			}
		}
		if i > 0 && res.Placed[i-1].End.After(p.Start) {
			t.Errorf("%q overlaps previous task: %s < %s", p.Description,
				p.Start.Format("15:04"), res.Placed[i-1].End.Format("15:04"))
		}
	}
}

type fakeReorderer struct {
	tasks []task.Task
	err   error
	calls int
}

func (f *fakeReorderer) Reorder(_ context.Context, tasks []task.Task, _ *profile.Profile, _ ScheduleType) ([]task.Task, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.tasks != nil {
		return f.tasks, nil
	}
	return tasks, nil
}

func TestSchedule_ReorderApplied(t *testing.T) {
	reversed := &fakeReorderer{tasks: []task.Task{
		{Description: "second", Duration: 30},
		{Description: "first", Duration: 30},
	}}
	s := New(reversed)

	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "first", Duration: 30},
			{Description: "second", Duration: 30},
		},
		Type: TypePersonal,
		Now:  monday(9, 0),
	})

	if reversed.calls != 1 {
		t.Fatalf("reorderer called %d times, want 1", reversed.calls)
	}
	if res.Placed[0].Description != "second" {
		t.Errorf("first slot went to %q, want the reordered head", res.Placed[0].Description)
	}
	if res.ReorderNote != "" {
		t.Errorf("unexpected reorder note %q", res.ReorderNote)
	}
}

func TestSchedule_ReorderFallback(t *testing.T) {
	failing := &fakeReorderer{err: errors.New("model unavailable")}
	s := New(failing)

	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "first", Duration: 30},
			{Description: "second", Duration: 30},
		},
		Type: TypePersonal,
		Now:  monday(9, 0),
	})

	if res.Placed[0].Description != "first" {
		t.Errorf("fallback should keep the original order, got %q first", res.Placed[0].Description)
	}
	if res.ReorderNote == "" {
		t.Error("expected a reorder note on fallback")
	}
}

func TestSchedule_ReorderEmptyResponseIgnored(t *testing.T) {
	empty := &fakeReorderer{tasks: []task.Task{}}
	s := New(empty)

	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{{Description: "only", Duration: 30}},
		Type:  TypePersonal,
		Now:   monday(9, 0),
	})

	assertPlacements(t, res, "09:00-09:30")
}

func TestSchedule_BlankDescriptionDropped(t *testing.T) {
	s := New(nil)
	res := s.Schedule(context.Background(), Request{
		Tasks: []task.Task{
			{Description: "   ", Duration: 30},
			{Description: "real work", Duration: 30},
		},
		Type: TypePersonal,
		Now:  monday(9, 0),
	})

	if len(res.Placed) != 1 || res.Placed[0].Description != "real work" {
		t.Errorf("placed = %+v, want only the real task", res.Placed)
	}
}

func TestParseScheduleType(t *testing.T) {
	tests := []struct {
		in   string
		want ScheduleType
	}{
		{"work", TypeWork},
		{"work-related", TypeWork},
		{"WORK", TypeWork},
		{"personal", TypePersonal},
		{"", TypePersonal},
		{"errands", TypePersonal},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseScheduleType(tc.in); got != tc.want {
				t.Errorf("ParseScheduleType(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
