// internal/middleware/middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/javajoker/catalog-manager/internal/config"
	"github.com/javajoker/catalog-manager/internal/services"
	"github.com/javajoker/catalog-manager/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func TestParseLanguage(t *testing.T) {
	tests := map[string]string{
		"":                          "pt_BR",
		"pt-BR,pt;q=0.9,en;q=0.8":   "pt_BR",
		"en-US,en;q=0.9":            "en",
		"en":                        "en",
		"de-DE":                     "pt_BR",
		" EN-GB ; q=0.7, pt;q=0.5 ": "en",
	}
	for header, want := range tests {
		assert.Equal(t, want, ParseLanguage(header), "header %q", header)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRequestLogger_Role(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/public", okHandler)
	r.GET("/admin", func(c *gin.Context) {
		c.Set("role", "admin")
		okHandler(c)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin", nil))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "admin", entry.Data["role"])
	assert.Equal(t, "/admin", entry.Data["path"])

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/public", nil))
	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.NotContains(t, entry.Data, "role")
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(rate.Every(time.Hour), 2)
	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/", okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestAdminRequired(t *testing.T) {
	hash, err := utils.HashPassword("admin-pass")
	require.NoError(t, err)

	authService := services.NewAuthService(config.AuthConfig{
		Enabled:           true,
		JWTSecret:         "middleware-test-secret",
		AdminPasswordHash: hash,
		TokenTTL:          1,
	})

	r := gin.New()
	r.GET("/data", AdminRequired(authService), okHandler)

	serve := func(auth string) int {
		req := httptest.NewRequest("GET", "/data", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(""))
	assert.Equal(t, http.StatusUnauthorized, serve("Basic abc"))
	assert.Equal(t, http.StatusUnauthorized, serve("Bearer not-a-token"))

	viewer, err := utils.GenerateJWT("viewer", 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, serve("Bearer "+viewer))

	resp, err := authService.IssueToken(&services.TokenRequest{Password: "admin-pass"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, serve("Bearer "+resp.AccessToken))
}

func TestAdminRequired_Disabled(t *testing.T) {
	authService := services.NewAuthService(config.AuthConfig{Enabled: false})

	r := gin.New()
	r.GET("/data", AdminRequired(authService), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/data", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
