// internal/apiclient/categories.go
package apiclient

import (
	"context"
	"fmt"

	"github.com/inkstone-labs/qtstore/internal/models"
)

type CategoriesAPI struct {
	c *Client
}

func (c *CategoriesAPI) All(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *CategoriesAPI) ByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := c.c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}
