package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimiter_AllowsWithinBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(100, 5, KeyByUserOrIP())

	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d rejected: %d", i, w.Code)
		}
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	// Zero refill: only the burst token is available.
	rl := NewRateLimiter(0, 1, KeyByUserOrIP())

	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first request rejected: %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request allowed: %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("Retry-After = %q", got)
	}
	if !strings.Contains(w.Body.String(), `"code":"rate_limited"`) {
		t.Fatalf("envelope missing: %s", w.Body.String())
	}
}

func TestRateLimiter_BucketsPerIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(0, 1, KeyByUserOrIP())

	r := gin.New()
	// Simulate an auth layer resolving different users.
	r.Use(func(c *gin.Context) {
		c.Set("userID", c.GetHeader("X-Test-User"))
		c.Next()
	})
	r.Use(rl.Handler())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Test-User", user)
		r.ServeHTTP(w, req)
		return w.Code
	}

	if send("alice") != http.StatusOK {
		t.Fatalf("alice's first request rejected")
	}
	if send("alice") != http.StatusTooManyRequests {
		t.Fatalf("alice's second request allowed")
	}
	// Bob has his own bucket.
	if send("bob") != http.StatusOK {
		t.Fatalf("bob's bucket shared with alice")
	}
}

func TestKeyByUserOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	keyFn := KeyByUserOrIP()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := keyFn(c); !strings.HasPrefix(got, "ip:") {
		t.Fatalf("anonymous key = %q", got)
	}

	c.Set("userID", "alice")
	if got := keyFn(c); got != "user:alice" {
		t.Fatalf("user key = %q", got)
	}
}
