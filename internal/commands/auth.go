package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskbit/internal/api"
	"github.com/balkashynov/taskbit/internal/tui"
	"github.com/balkashynov/taskbit/internal/validate"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to TaskBit",
	Long: `Log in with your email and password.

Without --email and --password an interactive form opens, prefilled with
the remembered email when "remember me" is active. With --remember the
email is remembered and the session stays valid for 30 days.`,
	Args: cobra.NoArgs,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		remember, _ := cmd.Flags().GetBool("remember")

		if email == "" || password == "" {
			if email == "" {
				email, _ = a.session.GetRememberedEmail()
			}
			values, ok, err := tui.RunForm("Log in to TaskBit", tui.LoginFields(email, remember || a.session.IsRememberMeActive()),
				func(values map[string]string) map[string]string {
					return fieldErrors(validate.Login(values["email"], values["password"]))
				})
			if err != nil {
				a.printError(err)
				return
			}
			if !ok {
				fmt.Println("❌ Login cancelled.")
				return
			}
			email, password, remember = values["email"], values["password"], values["remember"] == "true"
		}

		email = strings.TrimSpace(email)
		if err := validate.Login(email, password); err != nil {
			a.printError(err)
			return
		}

		resp, err := a.client.Login(cmdContext(cmd), email, password)
		if err != nil {
			a.printError(err)
			return
		}

		if err := a.session.Login(resp.Token, resp.UserID, remember, email); err != nil {
			a.printError(fmt.Errorf("failed to save session: %w", err))
			return
		}

		fmt.Printf("✅ Logged in as %s\n", email)
		if remember {
			if expiry, ok := a.session.RememberExpiry(); ok {
				fmt.Printf("Remembered until %s\n", expiry.Local().Format("02/01/2006 15:04"))
			}
		}
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the remembered email",
	Args:  cobra.NoArgs,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if err := a.session.Logout(); err != nil {
			a.printError(err)
			return
		}
		fmt.Println("👋 Logged out.")
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if !a.session.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return
		}

		if user, ok := a.session.GetUser(); ok {
			fmt.Printf("User ID: %s\n", user.ID)
		} else {
			fmt.Println("User ID: unknown")
		}

		if email, ok := a.session.GetRememberedEmail(); ok {
			fmt.Printf("Remember me: on (%s)\n", email)
			if expiry, ok := a.session.RememberExpiry(); ok {
				fmt.Printf("Expires: %s\n", expiry.Local().Format("02/01/2006 15:04"))
			}
		} else {
			fmt.Println("Remember me: off")
		}
		fmt.Printf("Server: %s\n", a.cfg.API.BaseURL)
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a TaskBit account",
	Args:  cobra.NoArgs,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if name == "" || email == "" || password == "" {
			fields := []tui.FormField{
				{Key: "name", Label: "Name", Placeholder: "Your name", Value: name},
				{Key: "email", Label: "Email", Placeholder: "you@example.com", Value: email},
				{Key: "password", Label: "Password", Placeholder: "at least 8 characters", Secret: true},
			}
			values, ok, err := tui.RunForm("Create your TaskBit account", fields, func(values map[string]string) map[string]string {
				return fieldErrors(validate.Register(values["name"], values["email"], values["password"]))
			})
			if err != nil {
				a.printError(err)
				return
			}
			if !ok {
				fmt.Println("❌ Registration cancelled.")
				return
			}
			name, email, password = values["name"], values["email"], values["password"]
		}

		if err := validate.Register(name, email, password); err != nil {
			a.printError(err)
			return
		}

		resp, err := a.client.Register(cmdContext(cmd), api.RegisterRequest{Name: name, Email: email, Password: password})
		if err != nil {
			a.printError(err)
			return
		}

		fmt.Printf("✅ %s\n", orDefault(resp.Message, "Account created"))
		fmt.Println("Run 'taskbit login' to sign in.")
	}),
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password [email]",
	Short: "Email a password reset link",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		email := strings.TrimSpace(args[0])
		if err := validate.ForgotPassword(email); err != nil {
			a.printError(err)
			return
		}

		msg, err := a.client.ForgotPassword(cmdContext(cmd), email)
		if err != nil {
			a.printError(err)
			return
		}
		fmt.Printf("📧 %s\n", orDefault(msg, "Check your inbox for a reset link"))
	}),
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password with a reset token",
	Args:  cobra.NoArgs,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		token, _ := cmd.Flags().GetString("token")
		password, _ := cmd.Flags().GetString("password")

		if err := validate.ResetPassword(token, password); err != nil {
			a.printError(err)
			return
		}

		msg, err := a.client.ResetPassword(cmdContext(cmd), token, password)
		if err != nil {
			a.printError(err)
			return
		}
		fmt.Printf("✅ %s\n", orDefault(msg, "Password updated"))
	}),
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the TaskBit server is reachable",
	Args:  cobra.NoArgs,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		msg, err := a.client.Ping(cmdContext(cmd))
		if err != nil {
			a.printError(err)
			return
		}
		fmt.Printf("%s (%s)\n", msg, a.cfg.API.BaseURL)
	}),
}

// fieldErrors adapts a validation error to the form's field→message map
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	if errs, ok := err.(validate.Errors); ok {
		return errs
	}
	return map[string]string{"": err.Error()}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func init() {
	loginCmd.Flags().StringP("email", "e", "", "Account email")
	loginCmd.Flags().StringP("password", "p", "", "Account password")
	loginCmd.Flags().BoolP("remember", "r", false, "Remember the email and keep the session for 30 days")

	registerCmd.Flags().StringP("name", "n", "", "Your name")
	registerCmd.Flags().StringP("email", "e", "", "Account email")
	registerCmd.Flags().StringP("password", "p", "", "Password (at least 8 characters)")

	resetPasswordCmd.Flags().StringP("token", "t", "", "Reset token from the email")
	resetPasswordCmd.Flags().StringP("password", "p", "", "New password (at least 8 characters)")
	_ = resetPasswordCmd.MarkFlagRequired("token")
	_ = resetPasswordCmd.MarkFlagRequired("password")
}
