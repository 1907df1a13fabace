package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taskmate-ai/taskmate/internal/profile"
)

const profileEditPrompt = `You are an assistant that helps update a user profile based on instructions.

Here is the current profile:
%s

Instruction:
%s

Return only the updated profile as a raw JSON object with the same keys
(work_hours, break_duration_min, energy_levels). No explanation, no code blocks.`

// ProfileEditor applies a natural-language instruction to a profile.
type ProfileEditor struct {
	client Client
}

// NewProfileEditor creates a new ProfileEditor with the given LLM client.
func NewProfileEditor(client Client) *ProfileEditor {
	return &ProfileEditor{client: client}
}

// Apply asks the LLM to rewrite the profile per the instruction and
// validates the result before returning it.
func (e *ProfileEditor) Apply(ctx context.Context, p *profile.Profile, instruction string) (*profile.Profile, error) {
	current, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}

	prompt := fmt.Sprintf(profileEditPrompt, current, instruction)

	var updated profile.Profile
	if err := e.client.ChatJSON(ctx, []Message{{Role: "user", Content: prompt}}, &updated); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("updated profile is invalid: %w", err)
	}
	return &updated, nil
}
