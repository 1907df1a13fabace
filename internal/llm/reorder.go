package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/taskmate-ai/taskmate/internal/profile"
	"github.com/taskmate-ai/taskmate/internal/scheduler"
	"github.com/taskmate-ai/taskmate/internal/task"
)

const reorderInstructions = `Reorder tasks to maximize productivity, respecting durations where reasonable. ` +
	`Prefer high-energy tasks during the user's higher energy periods. ` +
	`Return ONLY a JSON array of tasks with the SAME schema (description, priority, energy, duration).`

// Reorderer asks the LLM for a productivity-ordered version of a task
// list. It implements scheduler.Reorderer; any failure is reported as
// an error so the scheduler can fall back to the original order.
type Reorderer struct {
	client Client
}

// NewReorderer creates a new Reorderer with the given LLM client.
func NewReorderer(client Client) *Reorderer {
	return &Reorderer{client: client}
}

type reorderPayload struct {
	ScheduleType string           `json:"schedule_type"`
	Profile      *profile.Profile `json:"profile"`
	Tasks        []task.Task      `json:"tasks"`
}

// Reorder submits the task list plus profile context and validates the
// response. Each returned item is coerced to a valid task; deadlines do
// not round-trip through the service, so they are re-derived from the
// original task with the same description.
func (r *Reorderer) Reorder(ctx context.Context, tasks []task.Task, p *profile.Profile, scheduleType scheduler.ScheduleType) ([]task.Task, error) {
	if p == nil {
		p = profile.Default()
	}

	payload, err := json.Marshal(reorderPayload{
		ScheduleType: string(scheduleType),
		Profile:      p,
		Tasks:        tasks,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding reorder payload: %w", err)
	}

	messages := []Message{
		{Role: "system", Content: "You are an expert day planner."},
		{Role: "user", Content: reorderInstructions + "\n\n" + string(payload)},
	}

	var raw []task.Task
	if err := r.client.ChatJSON(ctx, messages, &raw); err != nil {
		return nil, fmt.Errorf("reordering tasks: %w", err)
	}

	out := make([]task.Task, 0, len(raw))
	for _, t := range raw {
		nt, err := t.Normalize()
		if err != nil {
			continue
		}
		nt.Deadline = deadlineFor(tasks, nt.Description)
		out = append(out, nt)
	}

	if len(out) == 0 {
		return nil, errors.New("reorder response contained no valid tasks")
	}
	return out, nil
}

// deadlineFor returns the structured deadline of the original task with
// the given description, if any.
func deadlineFor(tasks []task.Task, description string) string {
	for _, t := range tasks {
		if t.Description == description {
			return t.Deadline
		}
	}
	return ""
}
