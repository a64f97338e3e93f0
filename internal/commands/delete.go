package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"delete"},
	Short:   "Delete a task and its alerts",
	Args:    cobra.ExactArgs(1),
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

		if force, _ := cmd.Flags().GetBool("force"); !force {
			fmt.Printf("Delete task #%d \"%s\"? [y/N] ", task.ID, task.Title)
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" && answer != "s" && answer != "si" && answer != "sí" {
				fmt.Println("❌ Delete cancelled.")
				return
			}
		}

		if err := a.client.DeleteTask(ctx, id); err != nil {
			a.printError(err)
			return
		}
		fmt.Printf("🗑️  Deleted task #%d: %s\n", task.ID, task.Title)
	}),
}

func init() {
	deleteCmd.Flags().BoolP("force", "f", false, "Do not ask for confirmation")
}
