package commands

import (
	"errors"
	"fmt"
	"slices"

	"github.com/balkashynov/taskbit/internal/api"
	"github.com/balkashynov/taskbit/internal/validate"
)

// formatError turns any error into the message shown to the user
func formatError(err error, baseURL string) string {
	var fieldErrs validate.Errors
	var apiErr *api.APIError

	switch {
	case errors.Is(err, api.ErrSessionExpired):
		return "🔒 Your session has expired. Run 'taskbit login' to sign in again."
	case errors.Is(err, api.ErrNotAuthenticated):
		return "🔒 You are not logged in. Run 'taskbit login' first."
	case errors.Is(err, api.ErrTimeout):
		return "⏱️  The server took too long to respond. Please try again."
	case errors.Is(err, api.ErrConnection):
		return fmt.Sprintf("🔌 Could not connect to the TaskBit server at %s. Check your connection and try again.", baseURL)
	case errors.As(err, &fieldErrs):
		fields := make([]string, 0, len(fieldErrs))
		for field := range fieldErrs {
			fields = append(fields, field)
		}
		slices.Sort(fields)
		msg := "Please fix the following:"
		for _, field := range fields {
			msg += fmt.Sprintf("\n  • %s: %s", field, fieldErrs[field])
		}
		return msg
	case errors.As(err, &apiErr):
		if apiErr.Field != "" {
			return fmt.Sprintf("Error (%s): %s", apiErr.Field, apiErr.Error())
		}
		return "Error: " + apiErr.Error()
	default:
		return "Error: " + err.Error()
	}
}

func (a *app) printError(err error) {
	a.logger.Printf("command failed: %v", err)
	fmt.Println(formatError(err, a.cfg.API.BaseURL))
}
