package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/medatlas/medatlas-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandingPath(t *testing.T) {
	assert.Equal(t, "/doctor/dashboard", LandingPath("doctor"))
	assert.Equal(t, "/admin/dashboard", LandingPath("admin"))
	assert.Equal(t, "/profile", LandingPath("patient"))
	assert.Equal(t, "/", LandingPath(""))
	assert.Equal(t, "/", LandingPath("something-else"))
}

func TestLocalPathRejectsOffSiteTargets(t *testing.T) {
	assert.True(t, localPath("/doctor/dashboard"))
	assert.True(t, localPath("/"))
	assert.False(t, localPath(""))
	assert.False(t, localPath("https://evil.example"))
	assert.False(t, localPath("//evil.example"))
	assert.False(t, localPath(`/\evil.example`))
	assert.False(t, localPath("doctor/dashboard"))
}

func TestCallbackWithoutCodeRedirectsToLogin(t *testing.T) {
	cfg := &config.Config{AppBaseURL: "https://app.example.com"}
	handler := NewCallbackHandler(nil, cfg)

	app := fiber.New()
	app.Get("/auth/callback", handler.Callback)

	req := httptest.NewRequest("GET", "/auth/callback", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://app.example.com/auth/login?error=missing_code",
		resp.Header.Get("Location"))
}
