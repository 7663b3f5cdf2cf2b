// internal/apiclient/notifications.go
package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/inkstone-labs/qtstore/internal/envelope"
	"github.com/inkstone-labs/qtstore/internal/models"
)

type NotificationsAPI struct {
	c *Client
}

type NotificationListParams struct {
	Page   int
	Size   int
	IsRead *bool
}

func (n *NotificationsAPI) List(ctx context.Context, params NotificationListParams) (*envelope.PageOf[models.Notification], error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Size > 0 {
		query.Set("size", strconv.Itoa(params.Size))
	}
	if params.IsRead != nil {
		query.Set("isRead", strconv.FormatBool(*params.IsRead))
	}
	var result envelope.PageOf[models.Notification]
	if err := n.c.get(ctx, "/notifications", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (n *NotificationsAPI) UnreadCount(ctx context.Context) (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	if err := n.c.get(ctx, "/notifications/unread-count", nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

func (n *NotificationsAPI) MarkRead(ctx context.Context, id int64) error {
	return n.c.put(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}

func (n *NotificationsAPI) MarkAllRead(ctx context.Context) error {
	return n.c.put(ctx, "/notifications/read-all", nil, nil)
}
