package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskmate-ai/taskmate/internal/scheduler"
)

var (
	slotTimeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	scheduleBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1)
)

// renderSchedule renders the placed tasks as a bordered timeline.
func renderSchedule(result *scheduler.Result) string {
	rows := make([]string, 0, len(result.Placed))
	for _, p := range result.Placed {
		span := fmt.Sprintf("%8s - %-8s", p.StartTime, p.EndTime)
		rows = append(rows, slotTimeStyle.Render(span)+"  "+p.Description)
	}
	return scheduleBoxStyle.MaxWidth(termWidth()).Render(strings.Join(rows, "\n"))
}

// displaySchedule prints the scheduling result to stdout.
func displaySchedule(result *scheduler.Result) {
	if result.ReorderNote != "" {
		fmt.Println(formatWarn("! " + result.ReorderNote))
	}

	if len(result.Placed) == 0 {
		fmt.Println("No tasks could be scheduled. Check the day window and task durations.")
	} else {
		fmt.Println(formatHeader("\nHere's your schedule:"))
		fmt.Println(renderSchedule(result))
	}

	for _, sk := range result.Skipped {
		fmt.Println(formatMuted(fmt.Sprintf("  skipped: %s (%s)", sk.Description, sk.Reason)))
	}
}
