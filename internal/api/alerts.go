package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/balkashynov/taskbit/internal/models"
)

func (c *Client) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	return c.listAlerts(ctx, "/api/alerts")
}

func (c *Client) ActiveAlerts(ctx context.Context) ([]models.Alert, error) {
	return c.listAlerts(ctx, "/api/alerts/active")
}

func (c *Client) TaskAlerts(ctx context.Context, taskID int64) ([]models.Alert, error) {
	return c.listAlerts(ctx, fmt.Sprintf("/api/alerts/task/%d", taskID))
}

// CreateAlert is bounded by the mutation budget; exceeding it yields ErrTimeout
func (c *Client) CreateAlert(ctx context.Context, in models.AlertInput) (*models.Alert, error) {
	ctx, cancel := c.withMutationBudget(ctx)
	defer cancel()

	var alert models.Alert
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/alerts", body: in, out: &alert, auth: true}); err != nil {
		return nil, err
	}
	return &alert, nil
}

func (c *Client) listAlerts(ctx context.Context, path string) ([]models.Alert, error) {
	alerts := []models.Alert{}
	if err := c.do(ctx, request{method: http.MethodGet, path: path, out: &alerts, auth: true}); err != nil {
		return nil, err
	}
	return alerts, nil
}
