package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmate-ai/taskmate/internal/llm"
	"github.com/taskmate-ai/taskmate/internal/profile"
)

func (a *App) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your scheduling preferences",
	}

	cmd.AddCommand(a.profileShowCmd())
	cmd.AddCommand(a.profileSetupCmd())
	cmd.AddCommand(a.profileUpdateCmd())

	return cmd
}

func (a *App) profileShowCmd() *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			user := a.userOrDefault(userFlag)

			if err := a.ensureStore(); err != nil {
				return err
			}
			prof, err := a.store.Load(ctx, user)
			if errors.Is(err, profile.ErrNotFound) {
				fmt.Printf("No profile stored for %q yet. Run 'taskmate profile setup'.\n", user)
				return nil
			}
			if err != nil {
				return err
			}

			printProfile(user, prof)
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "Profile to show (default from config)")
	return cmd
}

func (a *App) profileSetupCmd() *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Set up preferences interactively",
		Long: `Interactively configure work hours, preferred break length, and
energy levels across the day, then save the profile.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			user := a.userOrDefault(userFlag)

			if err := a.ensureStore(); err != nil {
				return err
			}

			// Start from the stored profile if there is one.
			prof, err := a.store.Load(ctx, user)
			if errors.Is(err, profile.ErrNotFound) {
				prof = a.config.DefaultProfile()
			} else if err != nil {
				return err
			}

			reader := bufio.NewReader(os.Stdin)
			fmt.Printf("Setting up preferences for %q:\n", user)

			prof.WorkHours.Start = promptValue(reader, "Workday starts at", prof.WorkHours.Start)
			prof.WorkHours.End = promptValue(reader, "Workday ends at", prof.WorkHours.End)
			prof.BreakDurationMin = promptInt(reader, "Preferred break duration (minutes)", prof.BreakDurationMin)
			prof.EnergyLevels.Morning = promptValue(reader, "Morning energy (low/medium/high)", prof.EnergyLevels.Morning)
			prof.EnergyLevels.Afternoon = promptValue(reader, "Afternoon energy (low/medium/high)", prof.EnergyLevels.Afternoon)
			prof.EnergyLevels.Evening = promptValue(reader, "Evening energy (low/medium/high)", prof.EnergyLevels.Evening)

			if err := prof.Validate(); err != nil {
				return fmt.Errorf("invalid profile: %w", err)
			}
			if err := a.store.Save(ctx, user, prof); err != nil {
				return err
			}

			fmt.Println(formatSuccess("Your preferences have been saved."))
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "Profile to set up (default from config)")
	return cmd
}

func (a *App) profileUpdateCmd() *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "update [instruction]",
		Short: "Update the profile from a natural-language instruction",
		Long: `Apply an instruction like "move my work end to 6 pm" or
"I'm most energetic in the evening now" to the stored profile via the LLM.
The result is validated before it is saved.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			user := a.userOrDefault(userFlag)
			instruction := strings.Join(args, " ")

			if err := a.ensureStore(); err != nil {
				return err
			}
			prof, err := a.store.Load(ctx, user)
			if errors.Is(err, profile.ErrNotFound) {
				prof = a.config.DefaultProfile()
			} else if err != nil {
				return err
			}

			client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			updated, err := llm.NewProfileEditor(client).Apply(ctx, prof, instruction)
			if err != nil {
				return err
			}
			if err := a.store.Save(ctx, user, updated); err != nil {
				return err
			}

			fmt.Println(formatSuccess("Profile updated."))
			printProfile(user, updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "Profile to update (default from config)")
	return cmd
}

func (a *App) userOrDefault(user string) string {
	if user != "" {
		return user
	}
	return a.config.Profile.User
}

func printProfile(user string, p *profile.Profile) {
	fmt.Println(formatHeader(fmt.Sprintf("Profile for %q:", user)))
	fmt.Printf("  Work hours:     %s - %s\n", p.WorkHours.Start, p.WorkHours.End)
	fmt.Printf("  Break duration: %d minutes\n", p.BreakDurationMin)
	fmt.Println("  Energy levels:")
	fmt.Printf("    Morning:   %s\n", p.EnergyLevels.Morning)
	fmt.Printf("    Afternoon: %s\n", p.EnergyLevels.Afternoon)
	fmt.Printf("    Evening:   %s\n", p.EnergyLevels.Evening)
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	value := promptValue(reader, label, strconv.Itoa(current))
	n, err := strconv.Atoi(value)
	if err != nil {
		return current
	}
	return n
}
