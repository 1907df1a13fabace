package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskmate-ai/taskmate/internal/llm"
	"github.com/taskmate-ai/taskmate/internal/profile"
	"github.com/taskmate-ai/taskmate/internal/scheduler"
)

func (a *App) planCmd() *cobra.Command {
	var (
		scheduleType string
		userFlag     string
		modelFlag    string
		noReorder    bool
	)

	cmd := &cobra.Command{
		Use:   "plan [tasks...]",
		Short: "Schedule a day's tasks from natural language",
		Long: `Turn a free-form task list into a conflict-free schedule for today.

Tasks with a completion constraint like "before 9 pm" or "by 8:30 pm"
are packed backward from their deadline; everything else fills forward
from the current time. Each task is followed by a short break.

Window:
  --type work      ends at your profile's work end time
  --type personal  six hours from now (default)

Examples:
  taskmate plan "Finish my project, workout for 1 hour, dinner before 9 pm"
  taskmate plan --type work "prep slides by 3 pm, answer emails, code review"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			input := strings.Join(args, " ")

			prof, err := a.loadProfile(ctx, userFlag)
			if err != nil {
				return err
			}

			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}
			client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			fmt.Println("Thinking through your day...")
			tasks, err := llm.NewTaskParser(client).Parse(ctx, input)
			if err != nil {
				return fmt.Errorf("extracting tasks: %w", err)
			}

			var reorderer scheduler.Reorderer
			if !noReorder {
				reorderer = llm.NewReorderer(client)
			}

			result := scheduler.New(reorderer).Schedule(ctx, scheduler.Request{
				Tasks:   tasks,
				Profile: prof,
				Type:    scheduler.ParseScheduleType(scheduleType),
				Now:     time.Now(),
			})

			displaySchedule(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&scheduleType, "type", "personal", "Schedule type: work or personal")
	cmd.Flags().StringVar(&userFlag, "user", "", "Profile to schedule for (default from config)")
	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().BoolVar(&noReorder, "no-reorder", false, "Skip the LLM reordering pass")

	return cmd
}

// loadProfile returns the stored profile for the user, or the configured
// defaults when none has been saved yet.
func (a *App) loadProfile(ctx context.Context, user string) (*profile.Profile, error) {
	if user == "" {
		user = a.config.Profile.User
	}
	if err := a.ensureStore(); err != nil {
		return nil, err
	}

	prof, err := a.store.Load(ctx, user)
	if errors.Is(err, profile.ErrNotFound) {
		return a.config.DefaultProfile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return prof, nil
}
