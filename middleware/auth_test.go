package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quickmechanic/models"
	"quickmechanic/services/backend"
	"quickmechanic/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func whoami(c *gin.Context) {
	userID, userType, ok := CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"ok":       ok,
		"userID":   userID,
		"userType": userType,
		"token":    backend.TokenFromContext(c.Request.Context()),
	})
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOptionalAuth(t *testing.T) {
	r := gin.New()
	r.GET("/", OptionalAuth(), whoami)

	w := serve(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":false,"userID":"","userType":"","token":""}`, w.Body.String())

	token, err := utils.GenerateToken("user-7", string(models.UserTypeMechanic), time.Hour)
	require.NoError(t, err)
	w = serve(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":"user-7"`)
	assert.Contains(t, w.Body.String(), `"userType":"mechanic"`)
	assert.Contains(t, w.Body.String(), `"token":"`+token+`"`)

	w = serve(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth(t *testing.T) {
	r := gin.New()
	r.GET("/", RequireAuth(), whoami)

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)

	token, err := utils.GenerateToken("user-7", "", time.Hour)
	require.NoError(t, err)
	w := serve(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userType":"client"`)

	bad, err := utils.GenerateToken("user-7", "driver", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(r, bad).Code)

	expired, err := utils.GenerateToken("user-7", "client", -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(r, expired).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimitMiddleware(2), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 3)
	for i := range codes {
		codes[i] = serve(r, "").Code
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}
