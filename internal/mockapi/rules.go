// internal/mockapi/rules.go
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/inkstone-labs/qtstore/internal/envelope"
	"github.com/inkstone-labs/qtstore/internal/localstore"
	"github.com/inkstone-labs/qtstore/internal/models"
	"github.com/inkstone-labs/qtstore/internal/ratelimit"
)

const apiPrefix = "/api/v1"

// route compiles an anchored pattern under the API prefix. Anchoring both
// ends keeps rules from capturing each other's paths; verify() proves it.
func route(pattern string) *regexp.Regexp {
	return regexp.MustCompile("^" + apiPrefix + pattern + "$")
}

func sample(path string) string {
	return apiPrefix + path
}

// buildRules assembles the ordered rule table over the dataset. First match
// wins, so literal paths (featured, search) sit above their parameterized
// siblings.
func buildRules(data *Dataset, store ThemeStore, limiter *ratelimit.Limiter) []Rule {
	return []Rule{
		// Auth
		{Method: "post", Pattern: route(`/auth/login`), Sample: sample("/auth/login"),
			Handler: loginHandler(data, limiter)},
		{Method: "post", Pattern: route(`/auth/register`), Sample: sample("/auth/register"),
			Handler: okNull},
		{Method: "post", Pattern: route(`/auth/logout`), Sample: sample("/auth/logout"),
			Handler: okNull},
		{Method: "post", Pattern: route(`/auth/refresh`), Sample: sample("/auth/refresh"),
			Handler: refreshHandler(data)},
		{Method: "post", Pattern: route(`/auth/send-code`), Sample: sample("/auth/send-code"),
			Handler: okNull},
		{Method: "post", Pattern: route(`/auth/reset-password`), Sample: sample("/auth/reset-password"),
			Handler: okNull},
		{Method: "put", Pattern: route(`/auth/change-password`), Sample: sample("/auth/change-password"),
			Handler: okNull},
		{Method: "get", Pattern: route(`/auth/oauth/github`), Sample: sample("/auth/oauth/github"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(map[string]string{"url": "https://github.com/login/oauth/authorize?client_id=mock"}), nil
			}},
		{Method: "get", Pattern: route(`/auth/oauth/github/callback`), Sample: sample("/auth/oauth/github/callback"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				// The demo callback signs in as the default member account.
				user := data.UserByID(2)
				return envelope.OK(loginResult(user)), nil
			}},

		// Users
		{Method: "get", Pattern: route(`/users/profile`), Sample: sample("/users/profile"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(data.UserByID(req.BearerUserID())), nil
			}},
		{Method: "put", Pattern: route(`/users/profile`), Sample: sample("/users/profile"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var body struct {
					Nickname  *string `json:"nickname"`
					Bio       *string `json:"bio"`
					AvatarURL *string `json:"avatarUrl"`
				}
				if err := req.BindJSON(&body); err != nil {
					return envelope.Envelope{}, err
				}
				return envelope.OK(data.UpdateUser(req.BearerUserID(), body.Nickname, body.Bio, body.AvatarURL)), nil
			}},
		{Method: "put", Pattern: route(`/users/language`), Sample: sample("/users/language"),
			Handler: okNull},
		{Method: "get", Pattern: route(`/users/(\d+)/public`), Sample: sample("/users/2/public"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				u := data.UserByID(req.MatchInt64(1))
				return envelope.OK(models.PublicProfile{
					ID: u.ID, Username: u.Username, Nickname: u.Nickname,
					AvatarURL: u.AvatarURL, Bio: u.Bio, CreatedAt: u.CreatedAt,
				}), nil
			}},
		{Method: "get", Pattern: route(`/users/me/theme`), Sample: sample("/users/me/theme"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(themeBlob(data.UserByID(req.BearerUserID()).ThemeConfig)), nil
			}},
		{Method: "put", Pattern: route(`/users/me/theme`), Sample: sample("/users/me/theme"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var body struct {
					ThemeConfig string `json:"themeConfig"`
				}
				if err := req.BindJSON(&body); err != nil {
					return envelope.Envelope{}, err
				}
				data.SetUserTheme(req.BearerUserID(), body.ThemeConfig)
				return envelope.OK(nil), nil
			}},

		// Products. Literal paths first so the slug rule cannot capture them.
		{Method: "get", Pattern: route(`/products`), Sample: sample("/products"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				records, total := data.Products(ProductFilter{
					CategoryID: req.QueryInt64("categoryId"),
					Keyword:    req.Query("keyword"),
					Sort:       req.Query("sort"),
					Page:       req.QueryInt("page"),
					Size:       req.QueryInt("size"),
				})
				return envelope.Paged(records, total), nil
			}},
		{Method: "get", Pattern: route(`/products/featured`), Sample: sample("/products/featured"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(data.FeaturedProducts()), nil
			}},
		{Method: "get", Pattern: route(`/products/search`), Sample: sample("/products/search"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				records, total := data.Products(ProductFilter{
					Keyword: req.Query("q"),
					Page:    req.QueryInt("page"),
					Size:    req.QueryInt("size"),
				})
				return envelope.Paged(records, total), nil
			}},
		{Method: "get", Pattern: route(`/products/(\d+)/versions`), Sample: sample("/products/1/versions"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(data.Versions(req.MatchInt64(1))), nil
			}},
		{Method: "get", Pattern: route(`/products/(\d+)/versions/latest`), Sample: sample("/products/1/versions/latest"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				v, found := data.LatestVersion(req.MatchInt64(1))
				if !found {
					return envelope.Fail(envelope.CodeNotFound, "no published version"), nil
				}
				return envelope.OK(v), nil
			}},
		{Method: "get", Pattern: route(`/products/([^/]+)`), Sample: sample("/products/qtcreator-pro"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				p, found := data.ProductBySlug(req.Match[1])
				if !found {
					return envelope.OK(nil), nil
				}
				return envelope.OK(p), nil
			}},

		// Categories
		{Method: "get", Pattern: route(`/categories`), Sample: sample("/categories"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(data.Categories()), nil
			}},
		{Method: "get", Pattern: route(`/categories/(\d+)`), Sample: sample("/categories/2"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				c, found := data.CategoryByID(req.MatchInt64(1))
				if !found {
					return envelope.Fail(envelope.CodeNotFound, "category not found"), nil
				}
				return envelope.OK(c), nil
			}},

		// Comments
		{Method: "get", Pattern: route(`/comments/product/(\d+)`), Sample: sample("/comments/product/1"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				records, total := data.CommentsForProduct(req.MatchInt64(1), req.QueryInt("page"), req.QueryInt("size"))
				return envelope.Paged(records, total), nil
			}},
		{Method: "post", Pattern: route(`/comments/product/(\d+)`), Sample: sample("/comments/product/1"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var body struct {
					Content string `json:"content"`
					Rating  int    `json:"rating"`
				}
				if err := req.BindJSON(&body); err != nil {
					return envelope.Envelope{}, err
				}
				user := data.UserByID(req.BearerUserID())
				return envelope.OK(data.CreateComment(req.MatchInt64(1), user, body.Content, body.Rating)), nil
			}},
		{Method: "put", Pattern: route(`/comments/(\d+)`), Sample: sample("/comments/1"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var body struct {
					Content string `json:"content"`
				}
				if err := req.BindJSON(&body); err != nil {
					return envelope.Envelope{}, err
				}
				if !data.UpdateComment(req.MatchInt64(1), body.Content) {
					return envelope.Fail(envelope.CodeNotFound, "comment not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "delete", Pattern: route(`/comments/(\d+)`), Sample: sample("/comments/1"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				if !data.DeleteComment(req.MatchInt64(1)) {
					return envelope.Fail(envelope.CodeNotFound, "comment not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "post", Pattern: route(`/comments/(\d+)/like`), Sample: sample("/comments/1/like"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				data.SetCommentLiked(req.MatchInt64(1), true)
				return envelope.OK(nil), nil
			}},
		{Method: "delete", Pattern: route(`/comments/(\d+)/like`), Sample: sample("/comments/1/like"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				data.SetCommentLiked(req.MatchInt64(1), false)
				return envelope.OK(nil), nil
			}},

		// Notifications
		{Method: "get", Pattern: route(`/notifications`), Sample: sample("/notifications"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var isRead *bool
				switch req.Query("isRead") {
				case "true":
					v := true
					isRead = &v
				case "false":
					v := false
					isRead = &v
				}
				records, total := data.NotificationsFor(req.BearerUserID(), isRead, req.QueryInt("page"), req.QueryInt("size"))
				return envelope.Paged(records, total), nil
			}},
		{Method: "get", Pattern: route(`/notifications/unread-count`), Sample: sample("/notifications/unread-count"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(map[string]int{"count": data.UnreadCount(req.BearerUserID())}), nil
			}},
		{Method: "put", Pattern: route(`/notifications/(\d+)/read`), Sample: sample("/notifications/1/read"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				data.MarkNotificationRead(req.MatchInt64(1))
				return envelope.OK(nil), nil
			}},
		{Method: "put", Pattern: route(`/notifications/read-all`), Sample: sample("/notifications/read-all"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				data.MarkAllNotificationsRead(req.BearerUserID())
				return envelope.OK(nil), nil
			}},

		// Admin
		{Method: "get", Pattern: route(`/admin/dashboard/stats`), Sample: sample("/admin/dashboard/stats"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(data.DashboardStats()), nil
			}},
		{Method: "get", Pattern: route(`/admin/users`), Sample: sample("/admin/users"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				records, total := data.AdminUsers(req.Query("keyword"), req.Query("status"), req.QueryInt("page"), req.QueryInt("size"))
				return envelope.Paged(records, total), nil
			}},
		{Method: "get", Pattern: route(`/admin/users/(\d+)`), Sample: sample("/admin/users/2"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(data.UserByID(req.MatchInt64(1))), nil
			}},
		{Method: "put", Pattern: route(`/admin/users/(\d+)/status`), Sample: sample("/admin/users/2/status"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var body struct {
					Status string `json:"status"`
				}
				if err := req.BindJSON(&body); err != nil {
					return envelope.Envelope{}, err
				}
				if !data.UpdateUserStatus(req.MatchInt64(1), body.Status) {
					return envelope.Fail(envelope.CodeNotFound, "user not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "get", Pattern: route(`/admin/products`), Sample: sample("/admin/products"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				records, total := data.Products(ProductFilter{
					AllStatuses: true,
					Status:      req.Query("status"),
					CategoryID:  req.QueryInt64("categoryId"),
					Keyword:     req.Query("keyword"),
					Page:        req.QueryInt("page"),
					Size:        req.QueryInt("size"),
				})
				return envelope.Paged(records, total), nil
			}},
		{Method: "post", Pattern: route(`/admin/products`), Sample: sample("/admin/products"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var p models.Product
				if err := req.BindJSON(&p); err != nil {
					return envelope.Envelope{}, err
				}
				return envelope.OK(data.CreateProduct(p)), nil
			}},
		{Method: "get", Pattern: route(`/admin/products/(\d+)`), Sample: sample("/admin/products/1"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				p, found := data.ProductByID(req.MatchInt64(1))
				if !found {
					return envelope.Fail(envelope.CodeNotFound, "product not found"), nil
				}
				return envelope.OK(p), nil
			}},
		{Method: "put", Pattern: route(`/admin/products/(\d+)`), Sample: sample("/admin/products/1"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var fields map[string]any
				if err := req.BindJSON(&fields); err != nil {
					return envelope.Envelope{}, err
				}
				if !data.UpdateProduct(req.MatchInt64(1), fields) {
					return envelope.Fail(envelope.CodeNotFound, "product not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "put", Pattern: route(`/admin/products/(\d+)/audit`), Sample: sample("/admin/products/8/audit"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var body struct {
					Status string `json:"status"`
				}
				if err := req.BindJSON(&body); err != nil {
					return envelope.Envelope{}, err
				}
				if !data.AuditProduct(req.MatchInt64(1), body.Status) {
					return envelope.Fail(envelope.CodeNotFound, "product not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "delete", Pattern: route(`/admin/products/(\d+)`), Sample: sample("/admin/products/1"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				if !data.DeleteProduct(req.MatchInt64(1)) {
					return envelope.Fail(envelope.CodeNotFound, "product not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "post", Pattern: route(`/admin/products/(\d+)/versions`), Sample: sample("/admin/products/1/versions"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var v models.Version
				if err := req.BindJSON(&v); err != nil {
					return envelope.Envelope{}, err
				}
				return envelope.OK(data.CreateVersion(req.MatchInt64(1), v)), nil
			}},
		{Method: "put", Pattern: route(`/admin/products/versions/(\d+)/publish`), Sample: sample("/admin/products/versions/3/publish"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				if !data.PublishVersion(req.MatchInt64(1)) {
					return envelope.Fail(envelope.CodeNotFound, "version not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "get", Pattern: route(`/admin/comments`), Sample: sample("/admin/comments"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				records, total := data.AdminComments(req.Query("status"), req.QueryInt64("productId"), req.QueryInt("page"), req.QueryInt("size"))
				return envelope.Paged(records, total), nil
			}},
		{Method: "put", Pattern: route(`/admin/comments/(\d+)/audit`), Sample: sample("/admin/comments/1/audit"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var body struct {
					Status string `json:"status"`
				}
				if err := req.BindJSON(&body); err != nil {
					return envelope.Envelope{}, err
				}
				if !data.AuditComment(req.MatchInt64(1), body.Status) {
					return envelope.Fail(envelope.CodeNotFound, "comment not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "delete", Pattern: route(`/admin/comments/(\d+)`), Sample: sample("/admin/comments/1"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				if !data.DeleteComment(req.MatchInt64(1)) {
					return envelope.Fail(envelope.CodeNotFound, "comment not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "post", Pattern: route(`/admin/products/categories`), Sample: sample("/admin/products/categories"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var c models.Category
				if err := req.BindJSON(&c); err != nil {
					return envelope.Envelope{}, err
				}
				return envelope.OK(data.CreateCategory(c)), nil
			}},
		{Method: "put", Pattern: route(`/admin/products/categories/(\d+)`), Sample: sample("/admin/products/categories/2"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var fields map[string]any
				if err := req.BindJSON(&fields); err != nil {
					return envelope.Envelope{}, err
				}
				if !data.UpdateCategory(req.MatchInt64(1), fields) {
					return envelope.Fail(envelope.CodeNotFound, "category not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "delete", Pattern: route(`/admin/products/categories/(\d+)`), Sample: sample("/admin/products/categories/2"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				if !data.DeleteCategory(req.MatchInt64(1)) {
					return envelope.Fail(envelope.CodeNotFound, "category not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "get", Pattern: route(`/admin/system/configs`), Sample: sample("/admin/system/configs"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(data.SystemConfigs()), nil
			}},
		{Method: "put", Pattern: route(`/admin/system/configs/([^/]+)`), Sample: sample("/admin/system/configs/site.name"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var body struct {
					Value string `json:"value"`
				}
				if err := req.BindJSON(&body); err != nil {
					return envelope.Envelope{}, err
				}
				if !data.UpdateSystemConfig(req.Match[1], body.Value) {
					return envelope.Fail(envelope.CodeNotFound, "config not found"), nil
				}
				return envelope.OK(nil), nil
			}},
		{Method: "get", Pattern: route(`/admin/audit-logs`), Sample: sample("/admin/audit-logs"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				records, total := data.AuditLogs(req.QueryInt64("userId"), req.Query("action"), req.QueryInt("page"), req.QueryInt("size"))
				return envelope.Paged(records, total), nil
			}},
		{Method: "get", Pattern: route(`/admin/system/theme`), Sample: sample("/admin/system/theme"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				saved, err := store.Get(ctx, localstore.KeySystemTheme)
				if err != nil && !errors.Is(err, localstore.ErrNotFound) {
					return envelope.Envelope{}, fmt.Errorf("reading global theme: %w", err)
				}
				return envelope.OK(themeBlob(saved)), nil
			}},
		{Method: "put", Pattern: route(`/admin/system/theme`), Sample: sample("/admin/system/theme"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				var body struct {
					ThemeConfig string `json:"themeConfig"`
				}
				if err := req.BindJSON(&body); err != nil {
					return envelope.Envelope{}, err
				}
				// Store the blob itself, not the request body, so the saved
				// value stays singly encoded.
				if err := store.Set(ctx, localstore.KeySystemTheme, body.ThemeConfig); err != nil {
					return envelope.Envelope{}, fmt.Errorf("saving global theme: %w", err)
				}
				return envelope.OK(nil), nil
			}},

		// Files
		{Method: "post", Pattern: route(`/files/upload`), Sample: sample("/files/upload"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(models.UploadResult{ID: 1, URL: "/mock/uploaded-file.png", Path: "/uploads/mock.png"}), nil
			}},
		{Method: "post", Pattern: route(`/files/upload/image`), Sample: sample("/files/upload/image"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(models.UploadResult{ID: 2, URL: "/mock/uploaded-image.png", Path: "/uploads/mock-image.png"}), nil
			}},

		// Update check
		{Method: "get", Pattern: route(`/updates/check`), Sample: sample("/updates/check"),
			Handler: func(ctx context.Context, req *Request) (envelope.Envelope, error) {
				return envelope.OK(models.UpdateCheck{HasUpdate: false}), nil
			}},
	}
}

func okNull(ctx context.Context, req *Request) (envelope.Envelope, error) {
	return envelope.OK(nil), nil
}

// themeBlob wraps a stored blob the way the API reports it: null, not "",
// when absent.
func themeBlob(blob string) map[string]*string {
	if blob == "" {
		return map[string]*string{"themeConfig": nil}
	}
	return map[string]*string{"themeConfig": &blob}
}

func loginResult(user models.User) models.LoginResult {
	return models.LoginResult{
		User:         user,
		AccessToken:  fmt.Sprintf("mock-token-%d-%s", user.ID, user.Username),
		RefreshToken: fmt.Sprintf("mock-refresh-%d", user.ID),
	}
}

// loginHandler verifies credentials against the dataset, throttling repeated
// failures per identifier.
func loginHandler(data *Dataset, limiter *ratelimit.Limiter) Handler {
	return func(ctx context.Context, req *Request) (envelope.Envelope, error) {
		var body struct {
			Email    string `json:"email"`
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := req.BindJSON(&body); err != nil {
			return envelope.Envelope{}, err
		}
		identifier := body.Email
		if identifier == "" {
			identifier = body.Username
		}

		if !limiter.Allow(identifier).Allowed {
			return envelope.Fail(envelope.CodeTooMany, "too many login attempts, please try again later"), nil
		}

		user, result := data.Authenticate(identifier, body.Password)
		switch result {
		case AuthOK:
			limiter.Reset(identifier)
			return envelope.OK(loginResult(user)), nil
		case AuthBanned:
			return envelope.Fail(envelope.CodeForbidden, "this account has been banned"), nil
		default:
			limiter.Record(identifier)
			return envelope.Fail(envelope.CodeUnauthorized, "incorrect username or password"), nil
		}
	}
}

var refreshTokenPattern = regexp.MustCompile(`^mock-refresh-(\d+)$`)

func refreshHandler(data *Dataset) Handler {
	return func(ctx context.Context, req *Request) (envelope.Envelope, error) {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := req.BindJSON(&body); err != nil {
			return envelope.Envelope{}, err
		}
		m := refreshTokenPattern.FindStringSubmatch(body.RefreshToken)
		if m == nil {
			return envelope.Fail(envelope.CodeUnauthorized, "invalid refresh token"), nil
		}
		id, _ := strconv.ParseInt(m[1], 10, 64)
		return envelope.OK(loginResult(data.UserByID(id))), nil
	}
}
