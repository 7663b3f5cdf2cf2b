// internal/apiclient/themesource.go
package apiclient

import (
	"context"

	"github.com/inkstone-labs/qtstore/internal/theme"
)

// userThemeSource adapts the users theme endpoints to the theme loader.
type userThemeSource struct {
	c *Client
}

func (s userThemeSource) Fetch(ctx context.Context) (string, error) {
	return s.c.Users.Theme(ctx)
}

func (s userThemeSource) Persist(ctx context.Context, blob string) error {
	return s.c.Users.UpdateTheme(ctx, blob)
}

// globalThemeSource does the same for the admin-managed platform theme.
type globalThemeSource struct {
	c *Client
}

func (s globalThemeSource) Fetch(ctx context.Context) (string, error) {
	return s.c.Admin.GlobalTheme(ctx)
}

func (s globalThemeSource) Persist(ctx context.Context, blob string) error {
	return s.c.Admin.UpdateGlobalTheme(ctx, blob)
}

// ThemeSource exposes the signed-in user's theme layer for the theme loader.
func (u *UsersAPI) ThemeSource() theme.Source {
	return userThemeSource{u.c}
}

// GlobalThemeSource exposes the platform theme layer for the theme loader.
func (a *AdminAPI) GlobalThemeSource() theme.Source {
	return globalThemeSource{a.c}
}
