// internal/apiclient/users.go
package apiclient

import (
	"context"
	"fmt"

	"github.com/inkstone-labs/qtstore/internal/models"
)

type UsersAPI struct {
	c *Client
}

type ProfileUpdate struct {
	Nickname  *string `json:"nickname,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

func (u *UsersAPI) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := u.c.get(ctx, "/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersAPI) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := u.c.put(ctx, "/users/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UsersAPI) UpdateLanguage(ctx context.Context, language string) error {
	return u.c.put(ctx, "/users/language", map[string]string{"language": language}, nil)
}

func (u *UsersAPI) PublicProfile(ctx context.Context, id int64) (*models.PublicProfile, error) {
	var profile models.PublicProfile
	if err := u.c.get(ctx, fmt.Sprintf("/users/%d/public", id), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Theme returns the user's persisted theme blob, "" when never customized.
func (u *UsersAPI) Theme(ctx context.Context) (string, error) {
	var result struct {
		ThemeConfig *string `json:"themeConfig"`
	}
	if err := u.c.get(ctx, "/users/me/theme", nil, &result); err != nil {
		return "", err
	}
	if result.ThemeConfig == nil {
		return "", nil
	}
	return *result.ThemeConfig, nil
}

func (u *UsersAPI) UpdateTheme(ctx context.Context, themeConfig string) error {
	return u.c.put(ctx, "/users/me/theme", map[string]string{"themeConfig": themeConfig}, nil)
}
