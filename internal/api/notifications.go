package api

import (
	"context"
	"net/http"
	"net/url"

	"edunity/internal/models"
)

// NotificationAPI wraps the notification endpoints.
type NotificationAPI struct {
	client *Client
}

// List fetches all notifications addressed to the given user.
func (a *NotificationAPI) List(ctx context.Context, userID, token string) ([]models.Notification, error) {
	query := url.Values{"userId": {userID}}
	var items []models.Notification
	if err := a.client.do(ctx, http.MethodGet, "/api/notifications", query, nil, token, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MarkRead flags one notification as read.
func (a *NotificationAPI) MarkRead(ctx context.Context, notificationID, token string) error {
	return a.client.do(ctx, http.MethodPut, "/api/notifications/"+notificationID+"/read", nil, nil, token, nil)
}
