package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskbit/internal/models"
	"github.com/balkashynov/taskbit/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.New(session.NewMemoryStorage())
	return New(server.URL, store, opts...), store
}

func loggedIn(t *testing.T, store *session.Store) {
	t.Helper()
	require.NoError(t, store.Login("tok-123", "1", true, "a@b.com"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		writeJSON(w, http.StatusOK, map[string]any{"token": "jwt", "userId": 42, "message": "Inicio de sesión exitoso"})
	})

	resp, err := client.Login(context.Background(), " a@b.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, models.ID("42"), resp.UserID)

	// the client never writes the session itself
	_, ok := store.GetToken()
	assert.False(t, ok)
}

func TestLogin_RejectedCredentialsKeepSession(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"timestamp": "2025-05-20T10:00:00Z",
			"status":    401,
			"error":     "Unauthorized",
			"message":   "Contraseña inválida",
		})
	})
	loggedIn(t, store)

	_, err := client.Login(context.Background(), "a@b.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Contraseña inválida", apiErr.Message)
	assert.Equal(t, "password", apiErr.Field)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.True(t, store.IsAuthenticated())
}

func TestAuthenticatedRequestCarriesBearer(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "title": "Ensayo", "status": "Pendiente", "dueDate": "2099-01-01", "priority": "alta"},
			{"id": 2, "title": "Lectura", "status": "Completada", "dueDate": nil},
		})
	})
	loggedIn(t, store)

	tasks, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "2099-01-01", tasks[0].DueDate.String())
	assert.Equal(t, models.PriorityHigh, tasks[0].Priority)
	assert.Nil(t, tasks[1].DueDate)
}

func TestUnauthorizedLogsOut(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	loggedIn(t, store)

	_, err := client.ListTasks(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, store.IsAuthenticated())
	_, ok := store.GetRememberedEmail()
	assert.False(t, ok)
}

func TestMissingTokenIsRefusedLocally(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.ListAlerts(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, called)
}

func TestBackendErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantMsg   string
		wantField string
	}{
		{"message", 400, `{"status":400,"error":"Bad Request","message":"La fecha límite debe ser futura"}`, "La fecha límite debe ser futura", "dueDate"},
		{"error fallback", 404, `{"status":404,"error":"Tarea no encontrada"}`, "Tarea no encontrada", ""},
		{"plain text", 409, "Ya existe una alerta con este tiempo de aviso", "Ya existe una alerta con este tiempo de aviso", "timeBefore"},
		{"html", 502, "<html>bad gateway</html>", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			loggedIn(t, store)

			_, err := client.CreateTask(context.Background(), models.TaskInput{Title: "x"})

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantField, apiErr.Field)
			assert.NotEmpty(t, apiErr.Error())
			assert.True(t, IsStatus(err, tt.status))
			assert.True(t, store.IsAuthenticated())
		})
	}
}

func TestCreateTaskNormalisesBody(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ensayo", body["title"])
		assert.Equal(t, "media", body["priority"])
		assert.Equal(t, "2099-02-03", body["dueDate"])
		assert.NotContains(t, body, "course")
		assert.NotContains(t, body, "description")

		writeJSON(w, http.StatusCreated, map[string]any{"id": 9, "title": "Ensayo", "status": "Pendiente"})
	})
	loggedIn(t, store)

	due := models.NewDate(2099, 2, 3)
	task, err := client.CreateTask(context.Background(), models.TaskInput{Title: "  Ensayo ", Priority: "MEDIA", DueDate: &due, Course: "  "})
	require.NoError(t, err)
	assert.Equal(t, int64(9), task.ID)
}

func TestCreateAlertTimesOut(t *testing.T) {
	release := make(chan struct{})
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithMutationTimeout(50*time.Millisecond))
	defer close(release)
	loggedIn(t, store)

	_, err := client.CreateAlert(context.Background(), models.AlertInput{TaskID: 1, TimeBefore: "1 hour"})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := New(url, session.New(session.NewMemoryStorage()))
	_, err := client.Login(context.Background(), "a@b.com", "x")
	assert.ErrorIs(t, err, ErrConnection)
}

func TestStatusUpdateAndDelete(t *testing.T) {
	var calls []string
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPatch:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Completada", body["status"])
			writeJSON(w, http.StatusOK, map[string]any{"id": 5, "title": "x", "status": "Completada", "completedAt": "2025-05-20T10:00:00Z"})
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	loggedIn(t, store)

	task, err := client.UpdateTaskStatus(context.Background(), 5, models.StatusCompleted)
	require.NoError(t, err)
	assert.True(t, task.IsCompleted())
	require.NotNil(t, task.CompletedAt)

	require.NoError(t, client.DeactivateTaskAlerts(context.Background(), 5))
	require.NoError(t, client.DeleteTask(context.Background(), 5))

	assert.Equal(t, []string{
		"PATCH /api/tasks/5/status",
		"POST /api/tasks/5/deactivate-alerts",
		"DELETE /api/tasks/5",
	}, calls)
}

func TestAlertEndpoints(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/alerts/active":
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "taskId": 3, "timeBefore": "1 hour", "scheduledFor": "2099-01-01T23:00:00Z", "status": "activa"}})
		case "/api/alerts/task/3":
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 1, "taskId": 3, "timeBefore": "1 hour", "scheduledFor": "2099-01-01T23:00:00Z", "status": "activa"},
				{"id": 2, "taskId": 3, "timeBefore": "2 days", "scheduledFor": "2098-12-31T00:00:00Z", "status": "desactivada"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	loggedIn(t, store)

	active, err := client.ActiveAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].IsActive())

	forTask, err := client.TaskAlerts(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, forTask, 2)
	assert.False(t, forTask[1].IsActive())
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ping", r.URL.Path)
		_, _ = io.WriteString(w, "TaskBit Backend funcionando correctamente!\n")
	})

	msg, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TaskBit Backend funcionando correctamente!", msg)
}

func TestCanceledContextIsNotAConnectionError(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	loggedIn(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListTasks(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotErrorIs(t, err, ErrConnection)
}

func TestClientOptionsAreOrderIndependent(t *testing.T) {
	store := session.New(session.NewMemoryStorage())

	own := &http.Client{}
	a := New("http://example.test", store, WithTimeout(2*time.Second), WithHTTPClient(own))
	b := New("http://example.test", store, WithHTTPClient(own), WithTimeout(2*time.Second))

	assert.Equal(t, 2*time.Second, a.http.Timeout)
	assert.Equal(t, 2*time.Second, b.http.Timeout)
	assert.Zero(t, own.Timeout, "caller's client must not be modified")
	assert.NotSame(t, own, a.http)
}

func TestNilHTTPClientIsIgnored(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	}, WithHTTPClient(nil))

	require.NotNil(t, client.http)
	assert.Equal(t, 15*time.Second, client.http.Timeout)
	assert.NotPanics(t, func() {
		_, err := client.Ping(context.Background())
		assert.NoError(t, err)
	})
}
