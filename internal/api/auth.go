package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Login authenticates and returns the user plus a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (User, string, error) {
	var data wireLogin
	_, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return User{}, "", err
	}
	return c.adaptUser(data.User), data.Token, nil
}

// Register creates an account and returns the user plus a bearer token.
func (c *Client) Register(ctx context.Context, name, username, email, password string) (User, string, error) {
	var data wireLogin
	_, err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"username": username,
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return User{}, "", err
	}
	return c.adaptUser(data.User), data.Token, nil
}

// ForgotPassword requests a reset email. The backend message is the
// user-facing confirmation.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{
		"email": email,
	}, nil)
	return err
}

// ResetPassword completes a reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/reset-password", map[string]string{
		"token":    token,
		"password": password,
	}, nil)
	return err
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (User, error) {
	var data wireUser
	_, err := c.do(ctx, http.MethodGet, "/auth/me", nil, &data)
	if err != nil {
		return User{}, err
	}
	return c.adaptUser(data), nil
}

// UpdateProfile sends a multipart form with the display name and an
// optional avatar file. avatarPath empty means keep the current avatar.
func (c *Client) UpdateProfile(ctx context.Context, name, avatarPath string) (User, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("name", name); err != nil {
		return User{}, fmt.Errorf("building form: %w", err)
	}
	if avatarPath != "" {
		f, err := os.Open(avatarPath)
		if err != nil {
			return User{}, fmt.Errorf("opening avatar: %w", err)
		}
		defer f.Close()
		part, err := w.CreateFormFile("avatar", filepath.Base(avatarPath))
		if err != nil {
			return User{}, fmt.Errorf("building form: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return User{}, fmt.Errorf("reading avatar: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return User{}, fmt.Errorf("building form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.base+"/auth/me", &buf)
	if err != nil {
		return User{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var data wireUser
	if _, err := c.send(req, &data); err != nil {
		return User{}, err
	}
	return c.adaptUser(data), nil
}
