package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/balkashynov/taskbit/internal/api"
	"github.com/balkashynov/taskbit/internal/config"
	"github.com/balkashynov/taskbit/internal/db"
	"github.com/balkashynov/taskbit/internal/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "taskbit",
	Short: "A terminal client for TaskBit",
	Long: `taskbit is a command-line client for the TaskBit task manager.
Log in, manage your course tasks and due-date alerts, and filter or sort
your task list from the terminal.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeApp()
	},
}

// app holds everything a command needs, built once per invocation
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	conn    *gorm.DB
	session *session.Store
	client  *api.Client
}

var current *app

// newApp loads config, opens local storage and builds the session and API client.
// If the local database cannot be opened the session lives in memory for this run.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := log.New(io.Discard, "", 0)
	if verbose || cfg.Debug {
		logger = log.New(os.Stderr, "taskbit: ", log.LstdFlags)
	}

	a := &app{cfg: cfg, logger: logger}

	var storage session.Storage
	conn, err := db.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Printf("local storage unavailable, session will not persist: %v", err)
		fmt.Println("⚠️  Could not open local storage; you will need to log in again next time.")
		storage = session.NewMemoryStorage()
	} else {
		a.conn = conn
		storage = db.NewSettingStore(conn)
	}

	a.session = session.New(storage,
		session.WithRememberDuration(cfg.Session.RememberDuration),
		session.WithLogger(logger),
	)
	a.client = api.New(cfg.API.BaseURL, a.session,
		api.WithTimeout(cfg.API.RequestTimeout),
		api.WithMutationTimeout(cfg.API.MutationTimeout),
		api.WithLogger(logger),
	)
	return a, nil
}

func closeApp() {
	if current != nil && current.conn != nil {
		if err := db.Close(current.conn); err != nil {
			current.logger.Printf("closing database: %v", err)
		}
	}
	current = nil
}

// withApp wraps a command function to build the app first
func withApp(fn func(*app, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if current == nil {
			a, err := newApp()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			current = a
		}
		fn(current, cmd, args)
	}
}

// withAuth is withApp for commands that need a logged-in user.
// An expired remember-me session is cleared by the check itself.
func withAuth(fn func(*app, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return withApp(func(a *app, cmd *cobra.Command, args []string) {
		if !a.session.IsAuthenticated() {
			fmt.Println("🔒 You are not logged in. Run 'taskbit login' first.")
			return
		}
		fn(a, cmd, args)
	})
}

// cmdContext returns the command's context, or a background one when run outside Execute
func cmdContext(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskbit %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and storage problems to stderr")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(reopenCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(alertCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
