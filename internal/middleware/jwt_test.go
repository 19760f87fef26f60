package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":         UserID(c),
			"organization_id": OrganizationID(c),
		})
	})
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7, 3, "admin")
	require.NoError(t, err)

	r := protectedRouter(RequireAuth())
	w := get(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"organization_id":3}`, w.Body.String())
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	r := protectedRouter(RequireAuth())

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "not-a-jwt").Code)
}

func TestRequireAuthWithRole(t *testing.T) {
	r := protectedRouter(RequireAuthWithRole("admin"))

	admin, err := GenerateToken(1, 1, "admin")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, admin).Code)

	user, err := GenerateToken(2, 1, "user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, user).Code)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
}

func TestWrongRoleNeverReachesHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handled := false
	r.GET("/protected", RequireAuthWithRole("admin"), func(c *gin.Context) {
		handled = true
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	user, err := GenerateToken(2, 1, "user")
	require.NoError(t, err)
	w := get(r, user)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handled, "protected handler ran for a wrong-role token")
	assert.NotContains(t, w.Body.String(), `"ok"`)
}
