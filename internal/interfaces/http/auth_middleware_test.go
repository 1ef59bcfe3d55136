package http_test

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	httpiface "github.com/lokumhouse/sweets-api/internal/interfaces/http"
	"github.com/lokumhouse/sweets-api/pkg/jwt"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

// buildTestApp wires the auth chain in front of two probe routes: /staff is
// role-gated, /me echoes the claims the middleware loaded into Locals.
func buildTestApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Use(httpiface.AuthMiddleware(testSecret))
	app.Get("/staff", httpiface.RequireRole(allowed...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"profile_id": httpiface.GetProfileID(c),
			"firma_id":   httpiface.GetFirmaID(c),
			"role":       httpiface.GetRole(c),
		})
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "profile-1", "firma-1", role, "sweets-platform", 15)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, token string) (*nethttp.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp, body := doRequest(t, app, "/staff", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp, body := doRequest(t, app, "/staff", "not.a.jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_WrongScheme(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	req := httptest.NewRequest(nethttp.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	token, err := jwt.Generate(testSecret, "profile-1", "", entity.RoleAdmin, "sweets-platform", -5)
	require.NoError(t, err)

	app := buildTestApp(entity.RoleAdmin)
	resp, body := doRequest(t, app, "/staff", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token, err := jwt.Generate("some-other-secret-32-bytes-long!!!!", "profile-1", "", entity.RoleAdmin, "sweets-platform", 15)
	require.NoError(t, err)

	app := buildTestApp(entity.RoleAdmin)
	resp, _ := doRequest(t, app, "/staff", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_LoadsClaimsIntoLocals(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp, body := doRequest(t, app, "/me", tokenForRole(t, entity.RolePartner))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "profile-1", got["profile_id"])
	assert.Equal(t, "firma-1", got["firma_id"])
	assert.Equal(t, entity.RolePartner, got["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AllowedRole(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp, _ := doRequest(t, app, "/staff", tokenForRole(t, entity.RoleAdmin))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_AnyOfSeveral(t *testing.T) {
	app := buildTestApp(entity.AdminCapableRoles...)
	resp, _ := doRequest(t, app, "/staff", tokenForRole(t, entity.RoleStaff))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_WrongRole(t *testing.T) {
	app := buildTestApp(entity.AdminCapableRoles...)
	resp, body := doRequest(t, app, "/staff", tokenForRole(t, entity.RolePartner))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenWithoutRole(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp, body := doRequest(t, app, "/staff", tokenForRole(t, ""))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT round-trip
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateParseRoundTrip(t *testing.T) {
	token, err := jwt.Generate(testSecret, "p-42", "f-7", entity.RoleStaff, "sweets-platform", 60)
	require.NoError(t, err)

	profileID, firmaID, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "p-42", profileID)
	assert.Equal(t, "f-7", firmaID)
	assert.Equal(t, entity.RoleStaff, role)
}

func TestJWT_EmptySecretRejected(t *testing.T) {
	_, err := jwt.Generate("", "p-1", "", entity.RoleAdmin, "sweets-platform", 15)
	assert.Error(t, err)
}
