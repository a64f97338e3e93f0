package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskbit/internal/models"
	"github.com/balkashynov/taskbit/internal/validate"
)

var statusCmd = &cobra.Command{
	Use:   "status [task-id] [status]",
	Short: "Change the status of a task",
	Long: `Change the status of a task.

Status is one of: pendiente, en progreso, completada
(English aliases pending, in-progress and done also work).`,
	Args: cobra.MinimumNArgs(2),
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		status, ok := models.ParseStatus(strings.Join(args[1:], " "))
		if !ok {
			a.printError(validate.Errors{"status": validate.MsgInvalidStatus})
			return
		}
		setStatus(a, cmd, args[0], status)
	}),
}

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		setStatus(a, cmd, args[0], models.StatusCompleted)
	}),
}

var startCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Mark a task as in progress",
	Args:  cobra.ExactArgs(1),
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		setStatus(a, cmd, args[0], models.StatusInProgress)
	}),
}

var reopenCmd = &cobra.Command{
	Use:     "reopen [task-id]",
	Aliases: []string{"undone"},
	Short:   "Mark a task back to pending",
	Args:    cobra.ExactArgs(1),
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		setStatus(a, cmd, args[0], models.StatusPending)
	}),
}

func setStatus(a *app, cmd *cobra.Command, arg string, status models.Status) {
	id, err := parseTaskID(arg)
	if err != nil {
		a.printError(err)
		return
	}

	task, err := a.client.UpdateTaskStatus(cmdContext(cmd), id, status)
	if err != nil {
		a.printError(err)
		return
	}

	switch task.Status {
	case models.StatusCompleted:
		fmt.Printf("✅ Marked task #%d as done: %s\n", task.ID, task.Title)
		if task.CompletedAt != nil {
			fmt.Printf("Completed at: %s\n", task.CompletedAt.Local().Format("15:04:05"))
		}
	case models.StatusInProgress:
		fmt.Printf("▶️  Started task #%d: %s\n", task.ID, task.Title)
	default:
		fmt.Printf("↩️  Marked task #%d back to %s: %s\n", task.ID, task.Status, task.Title)
	}
}
