package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/readerly/circulate/internal/domain"
)

// ListNotifications fetches all notifications for the caller.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var dtos []notificationDTO
	if err := c.doRequest(ctx, http.MethodGet, "/notifications", nil, nil, &dtos); err != nil {
		return nil, err
	}
	return mapNotifications(dtos), nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/notifications/%s/read", id), nil, nil, nil)
}

// MarkAllNotificationsRead marks every unread notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/notifications/mark-all-read", nil, nil, nil)
}
