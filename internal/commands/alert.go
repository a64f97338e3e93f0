package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskbit/internal/models"
	"github.com/balkashynov/taskbit/internal/parser"
	"github.com/balkashynov/taskbit/internal/validate"
)

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Manage due-date alerts",
	Long: `Manage reminders that fire a lead time before a task's due date.

Lead times: ` + strings.Join(parser.TimeBeforeOptions, ", ") + `
Short forms like 2h, 3d or "1 día" are accepted too.`,
}

var alertAddCmd = &cobra.Command{
	Use:   "add [task-id] [lead-time]",
	Short: "Create an alert for a task",
	Args:  cobra.MinimumNArgs(2),
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		id, err := parseTaskID(args[0])
		if err != nil {
			a.printError(err)
			return
		}

		in := models.AlertInput{TaskID: id, TimeBefore: strings.Join(args[1:], " ")}
		if err := validate.Alert(in); err != nil {
			a.printError(err)
			return
		}
		in.TimeBefore, _, _ = parser.ParseTimeBefore(in.TimeBefore)

		ctx := cmdContext(cmd)
		task, err := a.client.GetTask(ctx, id)
		if err != nil {
			a.printError(err)
			return
		}
		if !task.HasDueDate() {
			fmt.Printf("Task #%d has no due date. Set one with 'taskbit edit %d --due ...' first.\n", id, id)
			return
		}

		alert, err := a.client.CreateAlert(ctx, in)
		if err != nil {
			a.printError(err)
			return
		}

		scheduled := alert.ScheduledFor
		if scheduled.IsZero() {
			scheduled, _ = parser.ScheduledFor(*task.DueDate, in.TimeBefore)
		}
		fmt.Printf("🔔 Alert set for task #%d: %s before the due date\n", id, in.TimeBefore)
		fmt.Printf("Fires at: %s\n", scheduled.Local().Format("02/01/2006 15:04"))
	}),
}

var alertListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List alerts",
	Args:    cobra.NoArgs,
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		ctx := cmdContext(cmd)
		active, _ := cmd.Flags().GetBool("active")
		taskArg, _ := cmd.Flags().GetString("task")

		var (
			alerts []models.Alert
			err    error
		)
		switch {
		case taskArg != "":
			id, perr := parseTaskID(taskArg)
			if perr != nil {
				a.printError(perr)
				return
			}
			alerts, err = a.client.TaskAlerts(ctx, id)
		case active:
			alerts, err = a.client.ActiveAlerts(ctx)
		default:
			alerts, err = a.client.ListAlerts(ctx)
		}
		if err != nil {
			a.printError(err)
			return
		}

		if len(alerts) == 0 {
			fmt.Println("No alerts found. Use 'taskbit alert add <task-id> <lead-time>' to create one.")
			return
		}

		fmt.Printf("%-6s %-6s %-30s %-10s %-17s %s\n", "ID", "TASK", "TITLE", "BEFORE", "FIRES", "STATUS")
		fmt.Println(strings.Repeat("-", 84))
		for _, alert := range alerts {
			marker := ""
			if alert.IsActive() {
				marker = " 🔔"
			}
			fmt.Printf("%-6d %-6d %-30s %-10s %-17s %s%s\n",
				alert.ID,
				alert.TaskID,
				truncate(orDefault(alert.TaskTitle, "-"), 30),
				alert.TimeBefore,
				alert.ScheduledFor.Local().Format("02/01/2006 15:04"),
				alert.Status,
				marker)
		}
	}),
}

var alertOffCmd = &cobra.Command{
	Use:   "off [task-id]",
	Short: "Deactivate every alert of a task",
	Args:  cobra.ExactArgs(1),
	Run: withAuth(func(a *app, cmd *cobra.Command, args []string) {
		id, err := parseTaskID(args[0])
		if err != nil {
			a.printError(err)
			return
		}
		if err := a.client.DeactivateTaskAlerts(cmdContext(cmd), id); err != nil {
			a.printError(err)
			return
		}
		fmt.Printf("🔕 Alerts for task #%d deactivated.\n", id)
	}),
}

func init() {
	alertListCmd.Flags().BoolP("active", "a", false, "Only alerts that will still fire")
	alertListCmd.Flags().StringP("task", "t", "", "Only alerts of this task")

	alertCmd.AddCommand(alertAddCmd)
	alertCmd.AddCommand(alertListCmd)
	alertCmd.AddCommand(alertOffCmd)
}
