package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionExpired is returned after a 401 on an authenticated request.
	// The session has already been cleared when it is returned.
	ErrSessionExpired = errors.New("session expired, please log in again")
	// ErrNotAuthenticated means no token is stored, so nothing was sent
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrTimeout          = errors.New("the server took too long to respond")
	ErrConnection       = errors.New("could not connect to the server")
)

// APIError is a request the backend rejected
type APIError struct {
	Status  int
	Message string
	// Field is the form field the message belongs to, or "" for a form-level error
	Field string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// errorBody is the backend's error envelope
type errorBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

var messageFields = map[string]string{
	"usuario no registrado":                         "email",
	"contraseña inválida":                           "password",
	"el email ya está registrado":                   "email",
	"campos obligatorios incompletos":               "title",
	"la fecha límite debe ser futura":               "dueDate",
	"prioridad no válida":                           "priority",
	"estado no válido":                              "status",
	"ya existe una alerta con este tiempo de aviso": "timeBefore",
}

// FieldForMessage maps a known backend message to the field it concerns
func FieldForMessage(message string) string {
	return messageFields[strings.ToLower(strings.TrimSpace(message))]
}

// IsStatus reports whether err is an APIError with the given HTTP status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
