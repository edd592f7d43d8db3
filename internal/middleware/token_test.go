package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtPkg "IntelliguardGolang/pkg/jwt"
	"IntelliguardGolang/pkg/log"
)

func newTokenTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv(AccessTokenSecret, "token-test-secret")

	m := New(log.NewLogger())
	app := fiber.New()
	app.Get("/protected", m.NewTokenMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})
	return app
}

func signTestToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	token, _, err := jwtPkg.Sign(claims, time.Minute)
	require.NoError(t, err)
	return token
}

func TestTokenMiddleware_ValidToken(t *testing.T) {
	app := newTokenTestApp(t)
	token := signTestToken(t, map[string]interface{}{
		"id":       "01HTEST",
		"username": "jprice",
		"email":    "jprice@example.com",
		"role":     "employee",
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestTokenMiddleware_MissingHeader(t *testing.T) {
	app := newTokenTestApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/protected", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestTokenMiddleware_NonStringClaimIsRejected(t *testing.T) {
	app := newTokenTestApp(t)

	// Signed with the real secret but carrying a numeric id claim. The
	// middleware must answer 401, not panic on the type assertion.
	token := signTestToken(t, map[string]interface{}{
		"id":       12345,
		"username": "jprice",
		"email":    "jprice@example.com",
		"role":     "employee",
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestTokenMiddleware_MissingClaimIsRejected(t *testing.T) {
	app := newTokenTestApp(t)
	token := signTestToken(t, map[string]interface{}{
		"id":       "01HTEST",
		"username": "jprice",
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}
