// internal/apiclient/products.go
package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/inkstone-labs/qtstore/internal/envelope"
	"github.com/inkstone-labs/qtstore/internal/models"
)

type ProductsAPI struct {
	c *Client
}

// ProductListParams filters the storefront product listing. Zero values mean
// "not set".
type ProductListParams struct {
	Page       int
	Size       int
	CategoryID int64
	Sort       string // downloads, rating, name
	Keyword    string
}

func (p ProductListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	if p.CategoryID > 0 {
		q.Set("categoryId", strconv.FormatInt(p.CategoryID, 10))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	return q
}

func (p *ProductsAPI) List(ctx context.Context, params ProductListParams) (*envelope.PageOf[models.Product], error) {
	var page envelope.PageOf[models.Product]
	if err := p.c.get(ctx, "/products", params.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (p *ProductsAPI) Featured(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.c.get(ctx, "/products/featured", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (p *ProductsAPI) Search(ctx context.Context, q string, page, size int) (*envelope.PageOf[models.Product], error) {
	query := url.Values{"q": {q}}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}
	var result envelope.PageOf[models.Product]
	if err := p.c.get(ctx, "/products/search", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BySlug fetches a product by slug; a numeric id works too.
func (p *ProductsAPI) BySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := p.c.get(ctx, "/products/"+url.PathEscape(slug), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *ProductsAPI) Versions(ctx context.Context, id int64) ([]models.Version, error) {
	var versions []models.Version
	if err := p.c.get(ctx, fmt.Sprintf("/products/%d/versions", id), nil, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

func (p *ProductsAPI) LatestVersion(ctx context.Context, id int64) (*models.Version, error) {
	var version models.Version
	if err := p.c.get(ctx, fmt.Sprintf("/products/%d/versions/latest", id), nil, &version); err != nil {
		return nil, err
	}
	return &version, nil
}
