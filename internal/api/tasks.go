package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/balkashynov/taskbit/internal/models"
)

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/tasks", out: &tasks, auth: true}); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, request{method: http.MethodGet, path: taskPath(id), out: &task, auth: true}); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask is bounded by the mutation budget; exceeding it yields ErrTimeout
func (c *Client) CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	ctx, cancel := c.withMutationBudget(ctx)
	defer cancel()

	var task models.Task
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/tasks", body: in.Normalize(), out: &task, auth: true})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, in models.TaskInput) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, request{method: http.MethodPut, path: taskPath(id), body: in.Normalize(), out: &task, auth: true})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTaskStatus(ctx context.Context, id int64, status models.Status) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   taskPath(id) + "/status",
		body:   map[string]models.Status{"status": status},
		out:    &task,
		auth:   true,
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task. The backend refuses while the task has active alerts.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, request{method: http.MethodDelete, path: taskPath(id), auth: true})
}

func (c *Client) DeactivateTaskAlerts(ctx context.Context, id int64) error {
	return c.do(ctx, request{method: http.MethodPost, path: taskPath(id) + "/deactivate-alerts", auth: true})
}

func taskPath(id int64) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}
