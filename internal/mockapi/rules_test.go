package mockapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstone-labs/qtstore/internal/apiclient"
	"github.com/inkstone-labs/qtstore/internal/envelope"
	"github.com/inkstone-labs/qtstore/internal/localstore"
	"github.com/inkstone-labs/qtstore/internal/models"
)

// testSession holds a fixed token.
type testSession struct {
	token string
}

func (s *testSession) AccessToken(ctx context.Context) string { return s.token }
func (s *testSession) Clear(ctx context.Context) error        { s.token = ""; return nil }

func TestLoginScenarios(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		password    string
		wantCode    int
		wantMessage string
	}{
		{name: "active_user", email: "zhangsan@example.com", password: DemoPassword, wantCode: envelope.CodeOK},
		{name: "username_works_too", email: "zhangsan", password: DemoPassword, wantCode: envelope.CodeOK},
		{name: "wrong_password", email: "zhangsan@example.com", password: "nope", wantCode: envelope.CodeUnauthorized, wantMessage: "incorrect username or password"},
		{name: "unknown_user", email: "ghost@example.com", password: DemoPassword, wantCode: envelope.CodeUnauthorized, wantMessage: "incorrect username or password"},
		{name: "banned_user", email: "banned@example.com", password: DemoPassword, wantCode: envelope.CodeForbidden, wantMessage: "this account has been banned"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client, _, _ := newTestClient(t, nil)
			result, err := client.Auth.Login(context.Background(), apiclient.LoginRequest{
				Email:    test.email,
				Password: test.password,
			})

			if test.wantCode == envelope.CodeOK {
				require.NoError(t, err)
				assert.Equal(t, "zhangsan", result.User.Username)
				assert.Equal(t, "mock-token-2-zhangsan", result.AccessToken)
				assert.Equal(t, "mock-refresh-2", result.RefreshToken)
				return
			}

			require.Error(t, err)
			apiErr, ok := apiclient.AsAPIError(err)
			require.True(t, ok, "expected business error, got %v", err)
			assert.Equal(t, test.wantCode, apiErr.Code)
			assert.Equal(t, test.wantMessage, apiErr.Message)
		})
	}
}

func TestRepeatedLoginFailuresRateLimited(t *testing.T) {
	client, _, _ := newTestClient(t, nil)
	ctx := context.Background()
	bad := apiclient.LoginRequest{Email: "zhangsan@example.com", Password: "nope"}

	// The test limiter allows three failures per window.
	for i := 0; i < 3; i++ {
		_, err := client.Auth.Login(ctx, bad)
		_, isBusiness := apiclient.AsAPIError(err)
		require.True(t, isBusiness, "attempt %d should fail with a business error", i+1)
	}

	_, err := client.Auth.Login(ctx, bad)
	assert.ErrorIs(t, err, apiclient.ErrRateLimited)

	// The lockout applies even with correct credentials.
	_, err = client.Auth.Login(ctx, apiclient.LoginRequest{Email: "zhangsan@example.com", Password: DemoPassword})
	assert.ErrorIs(t, err, apiclient.ErrRateLimited)
}

func TestRefreshToken(t *testing.T) {
	client, _, _ := newTestClient(t, nil)

	result, err := client.Auth.Refresh(context.Background(), "mock-refresh-2")
	require.NoError(t, err)
	assert.Equal(t, "zhangsan", result.User.Username)

	_, err = client.Auth.Refresh(context.Background(), "garbage")
	apiErr, ok := apiclient.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, envelope.CodeUnauthorized, apiErr.Code)
}

func TestProductListFiltersPublishedByCategory(t *testing.T) {
	client, _, _ := newTestClient(t, nil)

	// Category 2 holds one published product and one pending review; only
	// the published one may appear in the storefront.
	page, err := client.Products.List(context.Background(), apiclient.ProductListParams{CategoryID: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "ink-draw", page.Records[0].Slug)
	assert.Equal(t, models.StatusPublished, page.Records[0].Status)
}

func TestProductListPagingReportsFullTotal(t *testing.T) {
	client, _, _ := newTestClient(t, nil)

	page, err := client.Products.List(context.Background(), apiclient.ProductListParams{Page: 2, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total, "total counts all published products, not the page")
	assert.Len(t, page.Records, 3)
}

func TestProductListSortByDownloads(t *testing.T) {
	client, _, _ := newTestClient(t, nil)

	page, err := client.Products.List(context.Background(), apiclient.ProductListParams{Sort: "downloads"})
	require.NoError(t, err)
	require.NotEmpty(t, page.Records)
	for i := 1; i < len(page.Records); i++ {
		assert.GreaterOrEqual(t, page.Records[i-1].DownloadCount, page.Records[i].DownloadCount)
	}
}

func TestProductBySlugOrNumericID(t *testing.T) {
	client, _, _ := newTestClient(t, nil)
	ctx := context.Background()

	bySlug, err := client.Products.BySlug(ctx, "ink-draw")
	require.NoError(t, err)
	byID, err := client.Products.BySlug(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, bySlug.ID, byID.ID)
}

func TestFeaturedAndLiteralRoutesNotShadowedBySlug(t *testing.T) {
	client, _, _ := newTestClient(t, nil)

	featured, err := client.Products.Featured(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, featured)
	for _, p := range featured {
		assert.True(t, p.IsFeatured)
	}
}

func TestGlobalThemeStoredSinglyEncoded(t *testing.T) {
	client, _, store := newTestClient(t, nil)
	ctx := context.Background()
	blob := `{"background":{"opacity":0.9}}`

	require.NoError(t, client.Admin.UpdateGlobalTheme(ctx, blob))

	saved, err := store.Get(ctx, localstore.KeySystemTheme)
	require.NoError(t, err)
	assert.Equal(t, blob, saved, "stored blob must be the config itself, not the request body")

	got, err := client.Admin.GlobalTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestGlobalThemeAbsentReturnsEmpty(t *testing.T) {
	client, _, _ := newTestClient(t, nil)

	got, err := client.Admin.GlobalTheme(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUserThemeRoundTrip(t *testing.T) {
	session := &testSession{token: "mock-token-3-lisi"}
	client, data, _ := newTestClient(t, session)
	ctx := context.Background()
	blob := `{"appearance":{"primaryColor":"#112233"}}`

	got, err := client.Users.Theme(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "lisi has no saved theme initially")

	require.NoError(t, client.Users.UpdateTheme(ctx, blob))
	got, err = client.Users.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, blob, got)
	assert.Equal(t, blob, data.UserByID(3).ThemeConfig)
}

func TestBearerTokenSelectsUser(t *testing.T) {
	session := &testSession{token: "mock-token-2-zhangsan"}
	client, _, _ := newTestClient(t, session)

	user, err := client.Users.Profile(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, user.ID)
}

func TestCommentCreateLandsPending(t *testing.T) {
	session := &testSession{token: "mock-token-2-zhangsan"}
	client, data, _ := newTestClient(t, session)

	created, err := client.Comments.Create(context.Background(), 1, apiclient.CommentCreate{Content: "Trying the new build"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)

	// Pending comments stay out of the public listing but show up for
	// moderation.
	public, _ := data.CommentsForProduct(1, 1, 50)
	for _, c := range public {
		assert.NotEqual(t, created.ID, c.ID)
	}
	pending, _ := data.AdminComments(models.StatusPending, 1, 1, 50)
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)
}

func TestAdminMutationsApply(t *testing.T) {
	client, data, _ := newTestClient(t, &testSession{token: "mock-token-1-admin"})
	ctx := context.Background()

	require.NoError(t, client.Admin.UpdateUserStatus(ctx, 5, models.UserStatusBanned))
	assert.Equal(t, models.UserStatusBanned, data.UserByID(5).Status)

	require.NoError(t, client.Admin.AuditProduct(ctx, 8, models.StatusPublished))
	p, found := data.ProductByID(8)
	require.True(t, found)
	assert.Equal(t, models.StatusPublished, p.Status)
	require.NotNil(t, p.PublishedAt)

	require.NoError(t, client.Admin.UpdateSystemConfig(ctx, "register.enabled", "false"))
	for _, cfg := range data.SystemConfigs() {
		if cfg.ConfigKey == "register.enabled" {
			assert.Equal(t, "false", cfg.ConfigValue)
		}
	}
}

func TestNotificationsForBearerUser(t *testing.T) {
	session := &testSession{token: "mock-token-2-zhangsan"}
	client, _, _ := newTestClient(t, session)
	ctx := context.Background()

	count, err := client.Notifications.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, client.Notifications.MarkAllRead(ctx))
	count, err = client.Notifications.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestVersionPublishDemotesSiblings(t *testing.T) {
	client, data, _ := newTestClient(t, &testSession{token: "mock-token-1-admin"})

	// Version 3 is the old 2.0.3 Windows build; publishing it must demote
	// the current Windows latest.
	require.NoError(t, client.Admin.PublishVersion(context.Background(), 3))

	var latestWindows []int64
	for _, v := range data.Versions(1) {
		if v.Platform == "WINDOWS" && v.IsLatest {
			latestWindows = append(latestWindows, v.ID)
		}
	}
	assert.Equal(t, []int64{3}, latestWindows)
}

func TestDashboardStatsDistributionTracksDataset(t *testing.T) {
	client, data, _ := newTestClient(t, &testSession{token: "mock-token-1-admin"})
	ctx := context.Background()

	stats, err := client.Admin.DashboardStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.DownloadTrend, 7)

	data.RollDownloadTrend("07-16", 940)
	stats, err = client.Admin.DashboardStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats.DownloadTrend, 7, "trend window stays at seven days")
	assert.Equal(t, "07-16", stats.DownloadTrend[6].Date)
}
