package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentflow/models"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type memoryTokenStore struct{ revoked map[string]bool }

func (m *memoryTokenStore) Revoke(_ context.Context, hash string, _ time.Time) error {
	m.revoked[hash] = true
	return nil
}

func (m *memoryTokenStore) IsRevoked(_ context.Context, hash string) (bool, error) {
	return m.revoked[hash], nil
}

func newAuthRouter(issuer *utils.TokenIssuer, store utils.TokenStore) *gin.Engine {
	r := gin.New()
	api := r.Group("/api", JWTAuthMiddleware(issuer, store))
	api.GET("/me", func(c *gin.Context) {
		role, id := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	api.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	store := &memoryTokenStore{revoked: map[string]bool{}}
	r := newAuthRouter(issuer, store)

	tenantToken, err := issuer.GenerateToken("t1", "t@example.com", string(models.RoleTenant))
	require.NoError(t, err)
	adminToken, err := issuer.GenerateToken("a1", "a@example.com", string(models.RoleAdmin))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/me", "not-a-jwt").Code)

	w := do(r, "/api/me", tenantToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"t1"`)

	assert.Equal(t, http.StatusForbidden, do(r, "/api/admin", tenantToken).Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/api/admin", adminToken).Code)

	require.NoError(t, store.Revoke(context.Background(), utils.HashToken(tenantToken), time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/me", tenantToken).Code)

	other := utils.NewTokenIssuer("other-secret", time.Hour)
	forged, err := other.GenerateToken("a1", "a@example.com", string(models.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/admin", forged).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, get("1.1.1.1"))
	assert.Equal(t, http.StatusOK, get("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, get("1.1.1.1"))
	assert.Equal(t, http.StatusOK, get("2.2.2.2"))
}

func TestGetClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.7:5555"
	assert.Equal(t, "192.0.2.7", getClientIP(c))

	c.Request.Header.Set("X-Real-IP", " 198.51.100.2 ")
	assert.Equal(t, "198.51.100.2", getClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", getClientIP(c))
}
