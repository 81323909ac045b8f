package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/sliceworks/pizzactl/domain"
	serrors "github.com/sliceworks/pizzactl/errors"
	"github.com/sliceworks/pizzactl/validate"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Register creates an account. The backend sends a verification email.
func (c *Client) Register(ctx context.Context, r RegisterRequest) (domain.User, error) {
	if err := validate.Required("name", r.Name); err != nil {
		return domain.User{}, err
	}
	if err := validate.Email(r.Email); err != nil {
		return domain.User{}, err
	}
	if _, err := validate.Password(r.Password); err != nil {
		return domain.User{}, err
	}
	if r.Phone != "" {
		if err := validate.Phone(r.Phone); err != nil {
			return domain.User{}, err
		}
	}

	var out struct {
		User *domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/register", nil, r, &out); err != nil {
		return domain.User{}, err
	}
	if out.User == nil {
		return domain.User{}, errors.New("registration failed: no user data returned")
	}
	return *out.User, nil
}

// Login exchanges credentials for a session. The response is normalized
// into a domain.Session; role interpretation (admin vs customer) lives on
// the Session itself.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if err := validate.Email(email); err != nil {
		return domain.Session{}, err
	}
	if err := validate.Required("password", password); err != nil {
		return domain.Session{}, err
	}

	var out struct {
		AccessToken  string      `json:"accessToken"`
		RefreshToken string      `json:"refreshToken"`
		User         domain.User `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, body, &out); err != nil {
		return domain.Session{}, err
	}
	if out.AccessToken == "" {
		return domain.Session{}, serrors.NewAuth("login response did not contain an access token", nil)
	}
	return domain.Session{
		UserID:       out.User.ID,
		Name:         out.User.Name,
		Email:        out.User.Email,
		Role:         out.User.Role,
		Token:        out.AccessToken,
		RefreshToken: out.RefreshToken,
	}, nil
}

// VerifyEmail confirms an address with the token from the verification
// email.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	if err := validate.Required("token", token); err != nil {
		return err
	}
	var out struct {
		Success bool `json:"success"`
	}
	q := url.Values{"token": {token}}
	if err := c.do(ctx, http.MethodGet, "/users/verify-email", q, nil, &out); err != nil {
		return err
	}
	if !out.Success {
		return errors.New("email verification failed")
	}
	return nil
}

// ForgotPassword asks the backend to send a reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := validate.Email(email); err != nil {
		return err
	}
	var out struct {
		Success bool `json:"success"`
	}
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/users/forgot-password", nil, body, &out); err != nil {
		return err
	}
	if !out.Success {
		return errors.New("failed to send reset email")
	}
	return nil
}

// ResetPassword sets a new password using the token from the reset email.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validate.Required("token", token); err != nil {
		return err
	}
	if _, err := validate.Password(newPassword); err != nil {
		return err
	}
	var out struct {
		Success bool `json:"success"`
	}
	body := map[string]string{"token": token, "newPassword": newPassword}
	if err := c.do(ctx, http.MethodPost, "/users/reset-password", nil, body, &out); err != nil {
		return err
	}
	if !out.Success {
		return errors.New("password reset failed")
	}
	return nil
}

// RefreshToken exchanges a refresh token for a fresh access token. The
// transport performs this automatically on 401; the explicit wrapper
// exists for callers that want to refresh eagerly.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	var out struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	}
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/users/refresh-token", nil, body, &out); err != nil {
		return "", err
	}
	token := out.AccessToken
	if token == "" {
		token = out.Token
	}
	if token == "" {
		return "", serrors.NewAuth("refresh response did not contain a token", nil)
	}
	return token, nil
}

// Logout invalidates the server-side session. Local state clearing is the
// session manager's job.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/users/logout", nil, nil, nil)
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// UpdateProfile updates the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, u domain.User) (domain.User, error) {
	var updated domain.User
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, u, &updated); err != nil {
		return domain.User{}, err
	}
	return updated, nil
}
