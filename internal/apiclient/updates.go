// internal/apiclient/updates.go
package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/inkstone-labs/qtstore/internal/models"
)

type UpdatesAPI struct {
	c *Client
}

// UpdateQuery describes the installed build asking whether a newer version
// exists.
type UpdateQuery struct {
	Product  int64
	Version  string
	Platform string
	Arch     string
}

func (u *UpdatesAPI) Check(ctx context.Context, q UpdateQuery) (*models.UpdateCheck, error) {
	query := url.Values{
		"product":  {strconv.FormatInt(q.Product, 10)},
		"version":  {q.Version},
		"platform": {q.Platform},
	}
	if q.Arch != "" {
		query.Set("arch", q.Arch)
	}
	var result models.UpdateCheck
	if err := u.c.get(ctx, "/updates/check", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
