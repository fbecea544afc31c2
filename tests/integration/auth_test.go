//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/bissquit/incident-console/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SeededUsers(t *testing.T) {
	client := newTestClient(t)

	for _, username := range []string{"avery", "jordan", "morgan"} {
		client.ClearToken()
		client.LoginAs(t, username, "demo123")
		assert.NotEmpty(t, client.Token, "token for %s", username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"username": "avery",
		"password": "not-the-password",
	})
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe_ReturnsCurrentUser(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsCommander(t)

	resp, err := client.GET("/api/v1/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data userDTO `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &envelope)

	assert.Equal(t, "jordan", envelope.Data.Username)
	assert.Equal(t, "incident_commander", envelope.Data.Role)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	client := newTestClientWithoutValidation()

	for _, path := range []string{"/api/v1/me", "/api/v1/incidents", "/api/v1/services", "/api/v1/metrics"} {
		resp, err := client.GET(path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}

func TestRefresh_RotatesTokens(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"username": "avery",
		"password": "demo123",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &login)

	resp, err = client.POST("/api/v1/auth/refresh", map[string]string{
		"refresh_token": login.Data.RefreshToken,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshed struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &refreshed)

	assert.NotEmpty(t, refreshed.Data.AccessToken)
	assert.NotEqual(t, login.Data.RefreshToken, refreshed.Data.RefreshToken)

	// The old refresh token is revoked by rotation.
	resp, err = newTestClientWithoutValidation().POST("/api/v1/auth/refresh", map[string]string{
		"refresh_token": login.Data.RefreshToken,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRegister_RequiresManagerRole(t *testing.T) {
	client := newTestClientWithoutValidation()
	client.LoginAsEngineer(t)

	resp, err := client.POST("/api/v1/auth/register", map[string]string{
		"username": "newbie",
		"password": "password123",
		"name":     "New Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRegister_AsManager(t *testing.T) {
	client := newTestClient(t)
	client.LoginAsManager(t)

	resp, err := client.POST("/api/v1/auth/register", map[string]string{
		"username": "sam",
		"password": "password123",
		"name":     "Sam Okafor",
		"role":     "engineer",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data userDTO `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &envelope)
	assert.Equal(t, "sam", envelope.Data.Username)

	// Duplicate username conflicts.
	resp, err = client.WithoutValidation().POST("/api/v1/auth/register", map[string]string{
		"username": "sam",
		"password": "password123",
		"name":     "Sam Again",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// The new user can log in.
	client.ClearToken()
	client.LoginAs(t, "sam", "password123")
	assert.NotEmpty(t, client.Token)
}
