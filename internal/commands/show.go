package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a task and its alerts",
	Args:  cobra.ExactArgs(1),
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
		printTask(task, time.Now())

		alerts, err := a.client.TaskAlerts(ctx, id)
		if err != nil {
			// the task itself was shown; alerts are secondary
			a.logger.Printf("loading alerts for task %d: %v", id, err)
			fmt.Println("  Alerts:   unavailable")
			return
		}
		if len(alerts) == 0 {
			return
		}
		fmt.Println("  Alerts:")
		for _, alert := range alerts {
			fmt.Printf("    🔔 %-9s before, at %s (%s)\n",
				alert.TimeBefore,
				alert.ScheduledFor.Local().Format("02/01/2006 15:04"),
				alert.Status)
		}
	}),
}
