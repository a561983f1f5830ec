package movieapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	client := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "me@example.com", body["email"])
		assert.Equal(t, "hunter2", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "fresh-token",
			"user":  map[string]string{"name": "Alex", "role": "member"},
		})
	})

	token, user, err := client.Login(context.Background(), "me@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, "Alex", user.Name)
	assert.Equal(t, RoleMember, user.Role)
}

func TestClient_Login_missingToken(t *testing.T) {
	client := testClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"user": map[string]string{"name": "Alex"}})
	})

	_, _, err := client.Login(context.Background(), "me@example.com", "hunter2")
	require.Error(t, err)
	assert.True(t, IsServer(err))
}

func TestClient_Login_badCredentials(t *testing.T) {
	client := testClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid email or password"})
	})

	_, _, err := client.Login(context.Background(), "me@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsAuth(err))
}

func TestClient_Signup(t *testing.T) {
	client := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/signup", r.URL.Path)

		var body struct {
			User SignupForm `json:"user"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Alex", body.User.Name)
		assert.Equal(t, body.User.Password, body.User.PasswordConfirmation)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})

	form := SignupForm{Name: "Alex", Email: "me@example.com", Password: "hunter2", PasswordConfirmation: "hunter2"}
	require.NoError(t, client.Signup(context.Background(), form))
}

func TestClient_UpdateProfilePicture(t *testing.T) {
	client := testClient(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/update_profile_picture", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		_, header, err := r.FormFile("profile_picture")
		require.NoError(t, err)
		assert.Equal(t, "me.png", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"name": "Alex", "profile_picture_url": "https://img.example/me.png",
		})
	})

	user, err := client.UpdateProfilePicture(context.Background(), "me.png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/me.png", user.ProfilePictureURL)
}

func TestClient_CurrentUser(t *testing.T) {
	client := testClient(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"name": "Sam", "role": "supervisor", "profile_picture_url": "https://img.example/s.png",
		})
	})

	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RoleSupervisor, user.Role)
	assert.Equal(t, "https://img.example/s.png", user.ProfilePictureURL)
}
