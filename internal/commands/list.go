package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskbit/internal/api"
	"github.com/balkashynov/taskbit/internal/filter"
	"github.com/balkashynov/taskbit/internal/models"
	"github.com/balkashynov/taskbit/internal/parser"
	"github.com/balkashynov/taskbit/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long: `List your tasks, optionally filtered and sorted.

Filters combine: only tasks matching every given filter are shown.
Sorting by due date always puts tasks without a due date last.

Use --ui for the interactive list, where filters and sorting change live.`,
	Args: cobra.NoArgs,
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		spec, err := specFromFlags(cmd)
		if err != nil {
			a.printError(err)
			return
		}
		runList(a, cmd, spec)
	}),
}

// runList fetches the tasks and shows them as a table, JSON or the interactive list
func runList(a *app, cmd *cobra.Command, spec models.FilterSpec) {
	if ui, _ := cmd.Flags().GetBool("ui"); ui {
		err := tui.RunList(a.client, spec, func(err error) bool { return errors.Is(err, api.ErrSessionExpired) })
		if err != nil {
			if errors.Is(err, tui.ErrSessionEnded) {
				err = api.ErrSessionExpired
			}
			a.printError(err)
		}
		return
	}

	tasks, err := a.client.ListTasks(cmdContext(cmd))
	if err != nil {
		a.printError(err)
		return
	}

	visible := filter.Apply(tasks, spec)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		renderTasksJSON(visible, spec)
		return
	}
	renderTaskTable(visible, tasks, spec)
}

// specFromFlags builds a FilterSpec from the shared list flags
func specFromFlags(cmd *cobra.Command) (models.FilterSpec, error) {
	spec := models.DefaultFilterSpec()

	if value, _ := cmd.Flags().GetString("status"); value != "" {
		status, ok := models.ParseStatus(value)
		if !ok {
			return spec, fmt.Errorf("invalid status %q. Use: pendiente, en progreso or completada", value)
		}
		spec.Status = status
	}
	if value, _ := cmd.Flags().GetString("priority"); value != "" {
		priority, ok := parser.NormalizePriority(value)
		if !ok {
			return spec, fmt.Errorf("invalid priority %q. Use: alta, media or baja", value)
		}
		spec.Priority = priority
	}
	spec.Course, _ = cmd.Flags().GetString("course")
	spec.SearchTitle, _ = cmd.Flags().GetString("search")

	if value, _ := cmd.Flags().GetString("sort"); value != "" {
		sortBy, ok := models.ParseSortBy(value)
		if !ok {
			return spec, fmt.Errorf("invalid sort key %q. Use: none, due, priority or title", value)
		}
		spec.SortBy = sortBy
	}
	if value, _ := cmd.Flags().GetString("order"); value != "" {
		order, ok := models.ParseSortOrder(value)
		if !ok {
			return spec, fmt.Errorf("invalid order %q. Use: asc or desc", value)
		}
		spec.SortOrder = order
	}
	return spec, nil
}

// renderTasksJSON outputs tasks as JSON together with the filter that produced them
func renderTasksJSON(tasks []models.Task, spec models.FilterSpec) {
	result := struct {
		Filter models.FilterSpec `json:"filter"`
		Count  int               `json:"count"`
		Tasks  []models.Task     `json:"tasks"`
	}{
		Filter: spec,
		Count:  len(tasks),
		Tasks:  tasks,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(jsonBytes))
}

// renderTaskTable outputs tasks as a formatted table followed by a status summary
func renderTaskTable(tasks, all []models.Task, spec models.FilterSpec) {
	if len(all) == 0 {
		fmt.Println("No tasks found. Use 'taskbit add \"task title\"' to create your first task.")
		return
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks match the given filters.")
		renderSummary(tasks, all, spec)
		return
	}

	fmt.Printf("%-6s %-12s %-36s %-14s %-6s %s\n", "ID", "STATUS", "TITLE", "COURSE", "PRIO", "DUE")
	fmt.Println(strings.Repeat("-", 88))

	now := time.Now()
	for _, task := range tasks {
		due := "-"
		if task.HasDueDate() {
			due = task.DueDate.Format("02/01/2006")
			if !task.IsCompleted() && task.DueDate.Before(models.DateOf(now).Time) {
				due += " !"
			}
		}

		fmt.Printf("%-6d %-12s %-36s %-14s %-6s %s\n",
			task.ID,
			task.Status,
			truncate(task.Title, 36),
			truncate(orDefault(task.Course, "-"), 14),
			orDefault(string(task.Priority), "-"),
			due)
	}

	fmt.Println()
	renderSummary(tasks, all, spec)
}

func renderSummary(tasks, all []models.Task, spec models.FilterSpec) {
	counts := filter.CountByStatus(all)
	parts := make([]string, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		parts = append(parts, fmt.Sprintf("%s: %d", s, counts[s]))
	}
	fmt.Println(strings.Join(parts, " · "))

	if spec.IsActive() {
		fmt.Printf("Showing %d of %d tasks\n", len(tasks), len(all))
	}
}

// truncate shortens s to width runes
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// addListFlags registers the filter/sort flags shared by ls and search
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("status", "s", "", "Filter by status: pendiente, en progreso, completada")
	cmd.Flags().StringP("priority", "p", "", "Filter by priority: alta, media, baja")
	cmd.Flags().StringP("course", "c", "", "Filter by course (exact match)")
	cmd.Flags().String("sort", "", "Sort by: none, due, priority, title")
	cmd.Flags().StringP("order", "o", "asc", "Sort order: asc or desc")
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().Bool("ui", false, "Open the interactive list")
}

func init() {
	addListFlags(listCmd)
	listCmd.Flags().StringP("search", "q", "", "Only tasks whose title contains this text")
}
