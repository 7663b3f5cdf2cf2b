// internal/apiclient/comments.go
package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/inkstone-labs/qtstore/internal/envelope"
	"github.com/inkstone-labs/qtstore/internal/models"
)

type CommentsAPI struct {
	c *Client
}

type CommentCreate struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parentId,omitempty"`
	Rating   *int   `json:"rating,omitempty"`
}

func (c *CommentsAPI) ByProduct(ctx context.Context, productID int64, page, size int) (*envelope.PageOf[models.Comment], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}
	var result envelope.PageOf[models.Comment]
	err := c.c.get(ctx, fmt.Sprintf("/comments/product/%d", productID), query, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Create posts a new comment; it lands in PENDING until an admin approves it.
func (c *CommentsAPI) Create(ctx context.Context, productID int64, comment CommentCreate) (*models.Comment, error) {
	var created models.Comment
	err := c.c.post(ctx, fmt.Sprintf("/comments/product/%d", productID), comment, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *CommentsAPI) Update(ctx context.Context, id int64, content string) error {
	return c.c.put(ctx, fmt.Sprintf("/comments/%d", id), map[string]string{"content": content}, nil)
}

func (c *CommentsAPI) Delete(ctx context.Context, id int64) error {
	return c.c.delete(ctx, fmt.Sprintf("/comments/%d", id))
}

func (c *CommentsAPI) Like(ctx context.Context, id int64) error {
	return c.c.post(ctx, fmt.Sprintf("/comments/%d/like", id), nil, nil)
}

func (c *CommentsAPI) Unlike(ctx context.Context, id int64) error {
	return c.c.delete(ctx, fmt.Sprintf("/comments/%d/like", id))
}
