// internal/apiclient/auth.go
package apiclient

import (
	"context"
	"net/url"

	"github.com/inkstone-labs/qtstore/internal/models"
)

type AuthAPI struct {
	c *Client
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	VerificationCode string `json:"verificationCode"`
	Nickname         string `json:"nickname,omitempty"`
}

func (a *AuthAPI) Login(ctx context.Context, req LoginRequest) (*models.LoginResult, error) {
	var result models.LoginResult
	if err := a.c.post(ctx, "/auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *AuthAPI) Register(ctx context.Context, req RegisterRequest) error {
	return a.c.post(ctx, "/auth/register", req, nil)
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.c.post(ctx, "/auth/logout", nil, nil)
}

func (a *AuthAPI) Refresh(ctx context.Context, refreshToken string) (*models.LoginResult, error) {
	var result models.LoginResult
	err := a.c.post(ctx, "/auth/refresh", map[string]string{"refreshToken": refreshToken}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SendCode requests a verification code email; type is the purpose
// ("register", "reset-password").
func (a *AuthAPI) SendCode(ctx context.Context, email, codeType string) error {
	return a.c.post(ctx, "/auth/send-code", map[string]string{"email": email, "type": codeType}, nil)
}

func (a *AuthAPI) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	body := map[string]string{"email": email, "code": code, "newPassword": newPassword}
	return a.c.post(ctx, "/auth/reset-password", body, nil)
}

func (a *AuthAPI) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return a.c.put(ctx, "/auth/change-password", body, nil)
}

// GithubURL returns the OAuth authorize URL to open in a browser.
func (a *AuthAPI) GithubURL(ctx context.Context) (string, error) {
	var result struct {
		URL string `json:"url"`
	}
	if err := a.c.get(ctx, "/auth/oauth/github", nil, &result); err != nil {
		return "", err
	}
	return result.URL, nil
}

func (a *AuthAPI) GithubCallback(ctx context.Context, code string) (*models.LoginResult, error) {
	var result models.LoginResult
	query := url.Values{"code": {code}}
	if err := a.c.get(ctx, "/auth/oauth/github/callback", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
