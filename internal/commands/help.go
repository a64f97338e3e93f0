package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for taskbit",
	Long:  `Display detailed help for all taskbit commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
████████╗ █████╗ ███████╗██╗  ██╗██████╗ ██╗████████╗
╚══██╔══╝██╔══██╗██╔════╝██║ ██╔╝██╔══██╗██║╚══██╔══╝
   ██║   ███████║███████╗█████╔╝ ██████╔╝██║   ██║
   ██║   ██╔══██║╚════██║██╔═██╗ ██╔══██╗██║   ██║
   ██║   ██║  ██║███████║██║  ██╗██████╔╝██║   ██║
   ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝ ╚═╝   ╚═╝

taskbit - terminal client for the TaskBit task manager

ACCOUNT:

  login                   Log in (opens a form when flags are missing)
    -e, --email           Account email
    -p, --password        Account password
    -r, --remember        Remember the email for 30 days
  logout                  Clear the session and remembered email
  whoami                  Show the current session
  register                Create an account
  forgot-password <email> Email a password reset link
  reset-password          Set a new password
    -t, --token           Reset token from the email
    -p, --password        New password
  ping                    Check the server is reachable

TASKS:

  add <task>              Create a new task with smart parsing
    -c, --course          Course name
    -p, --priority        alta|media|baja
    -d, --due             Due date (yyyy-mm-dd, dd/mm/yyyy, tomorrow, 3 days)
    -n, --description     Description
    -i, --interactive     Open the task form

    Smart syntax:
      @course       Set course
      +priority     Set priority (alta/media/baja)
      due:tomorrow  Set due date

    Example:
      taskbit add "Ensayo final @Historia +alta due:3 days"

  ls                      List tasks
    -s, --status          pendiente|en progreso|completada
    -p, --priority        alta|media|baja
    -c, --course          Exact course name
    -q, --search          Title contains text
    --sort                none|due|priority|title
    -o, --order           asc|desc
    --json                JSON output
    --ui                  Interactive list

    Interactive list keys:
      ↑/↓ j/k       Navigate tasks
      ←/→ h/l       Change page
      /             Search
      s p c         Cycle status, priority, course filter
      o r           Cycle sort key, reverse order
      x             Clear filters
      i d u         Start, complete, reopen selected task
      R             Refresh
      esc/q         Quit

  search <query>          Same as ls --search
  show <id>               Show a task and its alerts
  edit <id>               Edit a task (form, or only the given flags)
  status <id> <status>    Change status
  start <id>              Mark in progress
  done <id>               Mark completed
  reopen <id>             Mark pending
  rm <id>                 Delete a task
    -f, --force           Skip confirmation

ALERTS:

  alert add <id> <lead>   Remind before the due date (1 hour ... 7 days)
  alert ls                List alerts
    -a, --active          Only active alerts
    -t, --task            Only alerts of a task
  alert off <id>          Deactivate the alerts of a task

  help                    Show this help
  version                 Show version

Use -v/--verbose with any command to log requests to stderr.
Configuration: TASKBIT_API_URL, TASKBIT_DATA_DIR (or a .env file).

`)
}
