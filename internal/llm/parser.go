package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taskmate-ai/taskmate/internal/task"
)

const parserSystemPrompt = `You convert messy task lists into a STRICT JSON array. ` +
	`You MUST preserve any temporal constraints such as 'before 9 pm' or 'by 8:30 pm'. ` +
	`For each task include keys: description, priority (low|medium|high), energy (low|medium|high), ` +
	`duration (integer minutes), and deadline. ` +
	`deadline MUST be null or a 24-hour time string 'HH:MM' that the task must FINISH BY. ` +
	`Output ONLY valid JSON. No extra words.`

// TaskParser extracts structured tasks from free-form text using an LLM.
type TaskParser struct {
	client Client
}

// NewTaskParser creates a new TaskParser with the given LLM client.
func NewTaskParser(client Client) *TaskParser {
	return &TaskParser{client: client}
}

// Parse converts a natural-language task list into structured tasks.
// Every returned task has been re-validated locally: the model's output
// is never trusted blindly.
func (p *TaskParser) Parse(ctx context.Context, input string) ([]task.Task, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("no tasks provided")
	}

	messages := []Message{
		{Role: "system", Content: parserSystemPrompt},
		{Role: "user", Content: parserUserMessage(input)},
	}

	var raw []task.Task
	if err := p.client.ChatJSON(ctx, messages, &raw); err != nil {
		return nil, fmt.Errorf("parsing tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(raw))
	for _, t := range raw {
		nt, err := t.Normalize()
		if err != nil {
			continue // skip items with no usable description
		}
		tasks = append(tasks, nt)
	}

	if len(tasks) == 0 {
		return nil, errors.New("no tasks could be extracted from the input")
	}
	return tasks, nil
}

func parserUserMessage(input string) string {
	return "Tasks:\n" + input + "\n\n" +
		`Return ONLY a JSON array like:` + "\n" +
		`[{"description":"Dinner before 9 pm","priority":"medium","energy":"low","duration":30,"deadline":"21:00"},` +
		` {"description":"Finish project","priority":"high","energy":"high","duration":120,"deadline":null}]`
}
