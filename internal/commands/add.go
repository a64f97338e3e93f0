package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskbit/internal/models"
	"github.com/balkashynov/taskbit/internal/parser"
	"github.com/balkashynov/taskbit/internal/validate"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new task with optional metadata.

Modes:
  Interactive: taskbit add -i (or just 'taskbit add' with no arguments)
  Quick: taskbit add "Task title" (with optional flags)
  Smart parsing: taskbit add "Ensayo final @Historia +alta due:tomorrow"

Smart parsing syntax:
  @course     - Course name
  +priority   - Priority (alta/media/baja, high/medium/low or 1/2/3)
  due:X       - Due date (yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days, X weeks)

Flags take precedence over parsed values. The due date must be after today.`,
	Args: cobra.ArbitraryArgs,
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		now := time.Now()
		interactive, _ := cmd.Flags().GetBool("interactive")

		parsed := parser.ParseTitle(strings.Join(args, " "), now)
		in := models.TaskInput{
			Title:    parsed.Title,
			Course:   parsed.Course,
			Priority: parsed.Priority,
			DueDate:  parsed.DueDate,
		}
		if err := applyTaskFlags(cmd, &in, now); err != nil {
			a.printError(err)
			return
		}

		if len(parsed.Errors) > 0 {
			fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			fmt.Println("Opening interactive mode for confirmation...")
			interactive = true
		}

		if len(args) == 0 || interactive {
			edited, ok, err := runTaskForm("New task", in, false, now)
			if err != nil {
				a.printError(err)
				return
			}
			if !ok {
				fmt.Println("❌ Task creation cancelled.")
				return
			}
			in = edited
		}

		in = in.Normalize()
		if err := validate.Task(in, now); err != nil {
			a.printError(err)
			return
		}

		task, err := a.client.CreateTask(cmdContext(cmd), in)
		if err != nil {
			a.printError(err)
			return
		}

		fmt.Printf("✅ Created task #%d: %s\n", task.ID, task.Title)
		if task.Course != "" {
			fmt.Printf("  Course: %s\n", task.Course)
		}
		if task.Priority != "" {
			fmt.Printf("  Priority: %s\n", task.Priority)
		}
		if task.HasDueDate() {
			fmt.Printf("  Due: %s\n", parser.FormatDueDate(task.DueDate, now))
		}
	}),
}

// applyTaskFlags overrides in with any task flags given on the command line
func applyTaskFlags(cmd *cobra.Command, in *models.TaskInput, now time.Time) error {
	if title, _ := cmd.Flags().GetString("title"); title != "" {
		in.Title = title
	}
	if course, _ := cmd.Flags().GetString("course"); course != "" {
		in.Course = course
	}
	if description, _ := cmd.Flags().GetString("description"); description != "" {
		in.Description = description
	}
	if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
		p, ok := parser.NormalizePriority(priority)
		if !ok {
			return validate.Errors{"priority": validate.MsgInvalidPriority}
		}
		in.Priority = p
	}
	if due, _ := cmd.Flags().GetString("due"); due != "" {
		d, err := parser.ParseDueDate(due, now)
		if err != nil {
			return fmt.Errorf("failed to parse due date: %w", err)
		}
		in.DueDate = d
	}
	return nil
}

// addTaskFlags registers the flags shared by add and edit
func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	cmd.Flags().StringP("course", "c", "", "Course name")
	cmd.Flags().StringP("priority", "p", "", "Priority: alta, media, baja (or high, medium, low, 1-3)")
	cmd.Flags().StringP("due", "d", "", "Due date: yyyy-mm-dd, dd/mm/yyyy, tomorrow, X days, X weeks")
	cmd.Flags().StringP("description", "n", "", "Description")
}

func init() {
	addTaskFlags(addCmd)
}
