// internal/apiclient/admin.go
package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/inkstone-labs/qtstore/internal/envelope"
	"github.com/inkstone-labs/qtstore/internal/models"
)

// AdminAPI covers the management console surface. Every call requires an
// admin session; the server answers 403 otherwise.
type AdminAPI struct {
	c *Client
}

func (a *AdminAPI) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := a.c.get(ctx, "/admin/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

type AdminUserParams struct {
	Page    int
	Size    int
	Keyword string
	Status  string
}

func (a *AdminAPI) ListUsers(ctx context.Context, params AdminUserParams) (*envelope.PageOf[models.User], error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Size > 0 {
		query.Set("size", strconv.Itoa(params.Size))
	}
	if params.Keyword != "" {
		query.Set("keyword", params.Keyword)
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	var page envelope.PageOf[models.User]
	if err := a.c.get(ctx, "/admin/users", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (a *AdminAPI) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := a.c.get(ctx, fmt.Sprintf("/admin/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AdminAPI) UpdateUserStatus(ctx context.Context, id int64, status string) error {
	return a.c.put(ctx, fmt.Sprintf("/admin/users/%d/status", id), map[string]string{"status": status}, nil)
}

type AdminProductParams struct {
	Page       int
	Size       int
	CategoryID int64
	Status     string
	Keyword    string
}

func (a *AdminAPI) ListProducts(ctx context.Context, params AdminProductParams) (*envelope.PageOf[models.Product], error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Size > 0 {
		query.Set("size", strconv.Itoa(params.Size))
	}
	if params.CategoryID > 0 {
		query.Set("categoryId", strconv.FormatInt(params.CategoryID, 10))
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Keyword != "" {
		query.Set("keyword", params.Keyword)
	}
	var page envelope.PageOf[models.Product]
	if err := a.c.get(ctx, "/admin/products", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (a *AdminAPI) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := a.c.get(ctx, fmt.Sprintf("/admin/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (a *AdminAPI) CreateProduct(ctx context.Context, product map[string]any) (*models.Product, error) {
	var created models.Product
	if err := a.c.post(ctx, "/admin/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *AdminAPI) UpdateProduct(ctx context.Context, id int64, fields map[string]any) error {
	return a.c.put(ctx, fmt.Sprintf("/admin/products/%d", id), fields, nil)
}

func (a *AdminAPI) DeleteProduct(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/admin/products/%d", id))
}

// AuditProduct moves a product to PUBLISHED or REJECTED.
func (a *AdminAPI) AuditProduct(ctx context.Context, id int64, status string) error {
	return a.c.put(ctx, fmt.Sprintf("/admin/products/%d/audit", id), map[string]string{"status": status}, nil)
}

func (a *AdminAPI) CreateVersion(ctx context.Context, productID int64, version map[string]any) (*models.Version, error) {
	var created models.Version
	err := a.c.post(ctx, fmt.Sprintf("/admin/products/%d/versions", productID), version, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *AdminAPI) PublishVersion(ctx context.Context, versionID int64) error {
	return a.c.put(ctx, fmt.Sprintf("/admin/products/versions/%d/publish", versionID), nil, nil)
}

type AdminCommentParams struct {
	Page      int
	Size      int
	Status    string
	ProductID int64
}

func (a *AdminAPI) ListComments(ctx context.Context, params AdminCommentParams) (*envelope.PageOf[models.Comment], error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Size > 0 {
		query.Set("size", strconv.Itoa(params.Size))
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.ProductID > 0 {
		query.Set("productId", strconv.FormatInt(params.ProductID, 10))
	}
	var page envelope.PageOf[models.Comment]
	if err := a.c.get(ctx, "/admin/comments", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (a *AdminAPI) AuditComment(ctx context.Context, id int64, status string) error {
	return a.c.put(ctx, fmt.Sprintf("/admin/comments/%d/audit", id), map[string]string{"status": status}, nil)
}

func (a *AdminAPI) DeleteComment(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/admin/comments/%d", id))
}

func (a *AdminAPI) CreateCategory(ctx context.Context, category map[string]any) (*models.Category, error) {
	var created models.Category
	if err := a.c.post(ctx, "/admin/products/categories", category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *AdminAPI) UpdateCategory(ctx context.Context, id int64, fields map[string]any) error {
	return a.c.put(ctx, fmt.Sprintf("/admin/products/categories/%d", id), fields, nil)
}

func (a *AdminAPI) DeleteCategory(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/admin/products/categories/%d", id))
}

func (a *AdminAPI) SystemConfigs(ctx context.Context) ([]models.SystemConfig, error) {
	var configs []models.SystemConfig
	if err := a.c.get(ctx, "/admin/system/configs", nil, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

func (a *AdminAPI) UpdateSystemConfig(ctx context.Context, key, value string) error {
	return a.c.put(ctx, "/admin/system/configs/"+url.PathEscape(key), map[string]string{"value": value}, nil)
}

type AuditLogParams struct {
	Page   int
	Size   int
	UserID int64
	Action string
}

func (a *AdminAPI) AuditLogs(ctx context.Context, params AuditLogParams) (*envelope.PageOf[models.AuditLog], error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Size > 0 {
		query.Set("size", strconv.Itoa(params.Size))
	}
	if params.UserID > 0 {
		query.Set("userId", strconv.FormatInt(params.UserID, 10))
	}
	if params.Action != "" {
		query.Set("action", params.Action)
	}
	var page envelope.PageOf[models.AuditLog]
	if err := a.c.get(ctx, "/admin/audit-logs", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GlobalTheme returns the platform-wide theme blob, "" when unset.
func (a *AdminAPI) GlobalTheme(ctx context.Context) (string, error) {
	var result struct {
		ThemeConfig *string `json:"themeConfig"`
	}
	if err := a.c.get(ctx, "/admin/system/theme", nil, &result); err != nil {
		return "", err
	}
	if result.ThemeConfig == nil {
		return "", nil
	}
	return *result.ThemeConfig, nil
}

func (a *AdminAPI) UpdateGlobalTheme(ctx context.Context, themeConfig string) error {
	return a.c.put(ctx, "/admin/system/theme", map[string]string{"themeConfig": themeConfig}, nil)
}
