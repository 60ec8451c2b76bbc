package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/Fkenogo/brand-health-analytics-banks/pkg/jwt-handling"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func perform(r *gin.Engine, method, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequirePayload(t *testing.T) {
	r := gin.New()
	r.POST("/", RequirePayload(), okHandler)

	if w := perform(r, http.MethodPost, "/", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("unexpected status: %d", w.Code)
	}
	if w := perform(r, http.MethodPost, "/", `{"a":1}`, nil); w.Code != http.StatusOK {
		t.Errorf("unexpected status: %d", w.Code)
	}
}

func TestDashboardAuthMiddleware(t *testing.T) {
	secret := "sign-key"
	r := gin.New()
	r.GET("/data", DashboardAuthMiddleware(secret, []string{"key-1"}), okHandler)
	r.GET("/admin", DashboardAuthMiddleware(secret, []string{"key-1"}), IsAdminUser(), okHandler)

	adminToken, _ := jwthandling.GenerateNewAdminUserToken(time.Minute, "admin", true, secret)
	expiredToken, _ := jwthandling.GenerateNewAdminUserToken(-time.Minute, "admin", true, secret)

	tests := []struct {
		name     string
		path     string
		headers  map[string]string
		expected int
	}{
		{"no credentials", "/data", nil, http.StatusUnauthorized},
		{"admin token", "/data", map[string]string{HeaderAuthorization: "Bearer " + adminToken}, http.StatusOK},
		{"expired token", "/data", map[string]string{HeaderAuthorization: "Bearer " + expiredToken}, http.StatusUnauthorized},
		{"valid api key", "/data", map[string]string{HeaderAPIKey: "key-1"}, http.StatusOK},
		{"invalid api key", "/data", map[string]string{HeaderAPIKey: "key-2"}, http.StatusUnauthorized},
		{"admin route with admin token", "/admin", map[string]string{HeaderAuthorization: "Bearer " + adminToken}, http.StatusOK},
		{"admin route with api key", "/admin", map[string]string{HeaderAPIKey: "key-1"}, http.StatusUnauthorized},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := perform(r, http.MethodGet, test.path, "", test.headers)
			if w.Code != test.expected {
				t.Errorf("unexpected status: %d, expected %d", w.Code, test.expected)
			}
		})
	}
}

func TestRequireDeviceID(t *testing.T) {
	r := gin.New()
	r.GET("/", RequireDeviceID(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextDeviceKey))
	})

	tests := []struct {
		name     string
		deviceID string
		expected int
	}{
		{"missing", "", http.StatusBadRequest},
		{"no prefix", "123e4567-e89b-12d3-a456-426614174000", http.StatusBadRequest},
		{"not a uuid", "dev_abc", http.StatusBadRequest},
		{"valid", "dev_123e4567-e89b-12d3-a456-426614174000", http.StatusOK},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := perform(r, http.MethodGet, "/", "", map[string]string{HeaderDeviceID: test.deviceID})
			if w.Code != test.expected {
				t.Errorf("unexpected status: %d", w.Code)
			}
			if test.expected == http.StatusOK && w.Body.String() != test.deviceID {
				t.Errorf("unexpected device id in context: %s", w.Body.String())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	rl := NewKeyedRateLimiter(1, 2)
	r := gin.New()
	r.GET("/", RateLimit(rl, func(c *gin.Context) string { return c.GetHeader("X-Key") }), okHandler)

	for i := 0; i < 2; i++ {
		if w := perform(r, http.MethodGet, "/", "", map[string]string{"X-Key": "a"}); w.Code != http.StatusOK {
			t.Errorf("unexpected status for request %d: %d", i, w.Code)
		}
	}
	if w := perform(r, http.MethodGet, "/", "", map[string]string{"X-Key": "a"}); w.Code != http.StatusTooManyRequests {
		t.Errorf("unexpected status: %d", w.Code)
	}
	// other keys have their own bucket
	if w := perform(r, http.MethodGet, "/", "", map[string]string{"X-Key": "b"}); w.Code != http.StatusOK {
		t.Errorf("unexpected status: %d", w.Code)
	}
}
