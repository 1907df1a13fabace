// Package ui implements the taskmate command-line interface.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmate-ai/taskmate/internal/config"
	"github.com/taskmate-ai/taskmate/internal/db"
	"github.com/taskmate-ai/taskmate/internal/profile"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	store  profile.Repository
	config *config.Config
	root   *cobra.Command
	closer func() error
}

// NewApp creates a new CLI application with the given profile store and
// config. store may be nil; it is opened lazily from config when needed.
func NewApp(store profile.Repository, cfg *config.Config) *App {
	a := &App{store: store, config: cfg}

	a.root = &cobra.Command{
		Use:   "taskmate",
		Short: "Turn a messy task list into a clean daily schedule",
		Long: `Taskmate turns a free-form list of tasks for the day into a
conflict-free timeline.

Tasks are extracted with an LLM, deadline-bound tasks are packed
backward from their due time, the rest fill forward from now, and every
task gets a short break after it.`,
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.planCmd())
	a.root.AddCommand(a.profileCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("taskmate %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureStore opens the profile database on first use.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	store, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening profile store: %w", err)
	}
	a.store = store
	a.closer = store.Close
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases resources held by the application.
func (a *App) Close() error {
	if a.closer != nil {
		return a.closer()
	}
	return nil
}
