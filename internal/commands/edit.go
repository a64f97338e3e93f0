package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskbit/internal/models"
	"github.com/balkashynov/taskbit/internal/validate"
)

var editCmd = &cobra.Command{
	Use:   "edit <task_id>",
	Short: "Edit an existing task",
	Long: `Edit an existing task.

Without flags the task form opens with every field prefilled with the
current task data. With flags only the given fields change.

Usage:
  taskbit edit 42                  - Edit task 42 in the form
  taskbit edit 42 --due "3 days"   - Move the due date of task 42`,
	Args: cobra.ExactArgs(1),
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		id, err := parseTaskID(args[0])
		if err != nil {
			a.printError(err)
			return
		}

		ctx := cmdContext(cmd)
		task, err := a.client.GetTask(ctx, id)
		if err != nil {
			a.printError(err)
			return
		}

		now := time.Now()
		original := models.InputFromTask(*task)
		in := original
		if err := applyTaskFlags(cmd, &in, now); err != nil {
			a.printError(err)
			return
		}
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			s, ok := models.ParseStatus(status)
			if !ok {
				a.printError(validate.Errors{"status": validate.MsgInvalidStatus})
				return
			}
			in.Status = s
		}

		interactive, _ := cmd.Flags().GetBool("interactive")
		if interactive || !anyChanged(cmd, "title", "course", "priority", "due", "description", "status") {
			edited, ok, err := runTaskForm(fmt.Sprintf("Edit task #%d", id), in, true, now)
			if err != nil {
				a.printError(err)
				return
			}
			if !ok {
				fmt.Println("❌ Edit cancelled.")
				return
			}
			in = edited
		}

		in = in.Normalize()
		if err := checkEdit(original, in, now); err != nil {
			a.printError(err)
			return
		}

		updated, err := a.client.UpdateTask(ctx, id, in)
		if err != nil {
			a.printError(err)
			return
		}

		fmt.Printf("✏️  Updated task #%d\n", updated.ID)
		printTask(updated, now)
	}),
}

// checkEdit validates an edit. A due date already in the past is accepted as
// long as the edit leaves it unchanged.
func checkEdit(original, in models.TaskInput, now time.Time) error {
	err := validate.Task(in, now)
	var errs validate.Errors
	if !errors.As(err, &errs) {
		return err
	}
	if _, ok := errs["dueDate"]; ok && sameDate(original.DueDate, in.DueDate) {
		delete(errs, "dueDate")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func sameDate(a, b *models.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b.Time)
}

func init() {
	addTaskFlags(editCmd)
	editCmd.Flags().StringP("title", "t", "", "New title")
	editCmd.Flags().StringP("status", "s", "", "Status: pendiente, en progreso, completada")
}
