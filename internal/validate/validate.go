// Package validate checks user input before it is sent to the backend.
// Messages match the ones the backend uses for the same rule.
package validate

import (
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/balkashynov/taskbit/internal/models"
	"github.com/balkashynov/taskbit/internal/parser"
)

// Field-level messages
const (
	MsgRequired         = "Campos obligatorios incompletos"
	MsgDueDatePast      = "La fecha límite debe ser futura"
	MsgInvalidPriority  = "Prioridad no válida"
	MsgInvalidStatus    = "Estado no válido"
	MsgTaskRequired     = "Debe seleccionar una tarea"
	MsgTimeBefore       = "Debe seleccionar un tiempo de aviso"
	MsgEmailRequired    = "El email es obligatorio"
	MsgEmailInvalid     = "El email no es válido"
	MsgPasswordRequired = "La contraseña es obligatoria"
	MsgPasswordShort    = "La contraseña debe tener al menos 8 caracteres"
	MsgNameRequired     = "El nombre es obligatorio"
	MsgTokenRequired    = "El token es obligatorio"
)

// MinPasswordLength applies to registration and password reset
const MinPasswordLength = 8

// Errors maps a field name to its message
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

// Field returns the message for field, or ""
func (e Errors) Field(field string) string {
	return e[field]
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Task validates a normalised task input. The due date must be strictly after
// the calendar day of now.
func Task(in models.TaskInput, now time.Time) error {
	errs := Errors{}

	if strings.TrimSpace(in.Title) == "" {
		errs["title"] = MsgRequired
	}
	if in.DueDate != nil && !in.DueDate.After(models.DateOf(now).Time) {
		errs["dueDate"] = MsgDueDatePast
	}
	if in.Priority != "" && in.Priority.Weight() == 0 {
		errs["priority"] = MsgInvalidPriority
	}
	if in.Status != "" && !slices.Contains(models.Statuses, in.Status) {
		errs["status"] = MsgInvalidStatus
	}

	return errs.orNil()
}

// Status validates a status change
func Status(status models.Status) error {
	if !slices.Contains(models.Statuses, status) {
		return Errors{"status": MsgInvalidStatus}
	}
	return nil
}

// Alert validates an alert creation request
func Alert(in models.AlertInput) error {
	errs := Errors{}

	if in.TaskID <= 0 {
		errs["taskId"] = MsgTaskRequired
	}
	if _, _, err := parser.ParseTimeBefore(in.TimeBefore); err != nil {
		errs["timeBefore"] = MsgTimeBefore
	}

	return errs.orNil()
}

// Login validates login credentials
func Login(email, password string) error {
	errs := Errors{}

	if strings.TrimSpace(email) == "" {
		errs["email"] = MsgEmailRequired
	}
	if password == "" {
		errs["password"] = MsgPasswordRequired
	}

	return errs.orNil()
}

// Register validates a registration form
func Register(name, email, password string) error {
	errs := Errors{}

	if strings.TrimSpace(name) == "" {
		errs["name"] = MsgNameRequired
	}
	if msg := checkEmail(email); msg != "" {
		errs["email"] = msg
	}
	if msg := checkNewPassword(password); msg != "" {
		errs["password"] = msg
	}

	return errs.orNil()
}

// ForgotPassword validates a password reset request
func ForgotPassword(email string) error {
	if msg := checkEmail(email); msg != "" {
		return Errors{"email": msg}
	}
	return nil
}

// ResetPassword validates the reset-password form
func ResetPassword(token, password string) error {
	errs := Errors{}

	if strings.TrimSpace(token) == "" {
		errs["token"] = MsgTokenRequired
	}
	if msg := checkNewPassword(password); msg != "" {
		errs["password"] = msg
	}

	return errs.orNil()
}

func checkEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return MsgEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return MsgEmailInvalid
	}
	return ""
}

func checkNewPassword(password string) string {
	switch {
	case password == "":
		return MsgPasswordRequired
	case len([]rune(password)) < MinPasswordLength:
		return MsgPasswordShort
	default:
		return ""
	}
}
