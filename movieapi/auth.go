package movieapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Role gates UI affordances such as the admin controls.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleMember     Role = "member"
	RoleSupervisor Role = "supervisor"
)

// User is the cached profile of the authenticated user.
type User struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              Role   `json:"role"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates with email and password and returns the bearer
// token together with the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, *User, error) {
	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", nil, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", nil, err
	}
	if resp.Token == "" {
		return "", nil, &Error{Kind: KindServer, Message: "login response did not contain a token"}
	}
	return resp.Token, &resp.User, nil
}

// SignupForm holds the fields for registering a new user.
type SignupForm struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type signupRequest struct {
	User SignupForm `json:"user"`
}

// Signup registers a new user account.
func (c *Client) Signup(ctx context.Context, form SignupForm) error {
	return c.doJSON(ctx, http.MethodPost, "/signup", nil, signupRequest{User: form}, nil)
}

// CurrentUser fetches the live profile of the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/user", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfilePicture uploads a new profile image and returns the
// refreshed profile.
func (c *Client) UpdateProfilePicture(ctx context.Context, filename string, image io.Reader) (*User, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	part, err := w.CreateFormFile("profile_picture", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/update_profile_picture", nil, buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, &Error{Kind: KindServer, Message: "failed to decode response", Err: err}
	}
	return &user, nil
}
