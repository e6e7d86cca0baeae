package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-research-backend/internal/domain"
	"github.com/tbourn/go-research-backend/internal/http/middleware"
	"github.com/tbourn/go-research-backend/internal/search"
	"github.com/tbourn/go-research-backend/internal/services"
)

// ---- stubs to satisfy handlers.New() dependencies ----

type stubAuthSvc struct {
	register func(ctx context.Context, username, password string) error
	verify   func(ctx context.Context, username, password string) bool
}

func (s stubAuthSvc) Register(ctx context.Context, username, password string) error {
	if s.register != nil {
		return s.register(ctx, username, password)
	}
	return nil
}

func (s stubAuthSvc) Verify(ctx context.Context, username, password string) bool {
	if s.verify != nil {
		return s.verify(ctx, username, password)
	}
	return false
}

type stubResearchSvc struct {
	quick  func(ctx context.Context, query string) ([]search.Result, error)
	deep   func(ctx context.Context, query string) (*services.DeepResult, error)
	recent func(ctx context.Context, limit int) ([]domain.Search, error)
	detail func(ctx context.Context, id uint) (*services.SearchDetail, error)
	total  int64
}

func (s stubResearchSvc) Quick(ctx context.Context, query string) ([]search.Result, error) {
	if s.quick != nil {
		return s.quick(ctx, query)
	}
	return nil, nil
}

func (s stubResearchSvc) Deep(ctx context.Context, query string) (*services.DeepResult, error) {
	if s.deep != nil {
		return s.deep(ctx, query)
	}
	return &services.DeepResult{}, nil
}

func (s stubResearchSvc) RecentSearches(ctx context.Context, limit int) ([]domain.Search, error) {
	if s.recent != nil {
		return s.recent(ctx, limit)
	}
	return nil, nil
}

func (s stubResearchSvc) Detail(ctx context.Context, id uint) (*services.SearchDetail, error) {
	if s.detail != nil {
		return s.detail(ctx, id)
	}
	return &services.SearchDetail{}, nil
}

func (s stubResearchSvc) TotalSearches() int64 { return s.total }

type stubReportSvc struct {
	generate func(ctx context.Context, username, query string, data services.ReportData, format string) (string, error)
	history  func(username string) []domain.ReportEntry
}

func (s stubReportSvc) Generate(ctx context.Context, username, query string, data services.ReportData, format string) (string, error) {
	if s.generate != nil {
		return s.generate(ctx, username, query, data, format)
	}
	return "", nil
}

func (s stubReportSvc) UserHistory(username string) []domain.ReportEntry {
	if s.history != nil {
		return s.history(username)
	}
	return nil
}

// newAuthRouter wires the auth routes with session resolution, mirroring
// the production router.
func newAuthRouter(h *Handlers, sessions *services.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SessionResolver(sessions))
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", middleware.RequireSession(), h.Me)
	return r
}

// ---- tests ----

func TestRegister_StatusMappings(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"empty username", services.ErrEmptyUsername, http.StatusBadRequest},
		{"short password", services.ErrPasswordTooShort, http.StatusBadRequest},
		{"taken", services.ErrUsernameTaken, http.StatusConflict},
		{"storage failure", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := services.NewSessionStore()
			h := New(stubAuthSvc{register: func(context.Context, string, string) error { return tt.err }},
				sessions, stubResearchSvc{}, stubReportSvc{})
			r := newAuthRouter(h, sessions)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/register",
				bytes.NewBufferString(`{"username":"alice","password":"s3cret"}`))
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRegister_BindingError(t *testing.T) {
	sessions := services.NewSessionStore()
	h := New(stubAuthSvc{register: func(context.Context, string, string) error {
		t.Fatalf("service must not run on binding error")
		return nil
	}}, sessions, stubResearchSvc{}, stubReportSvc{})
	r := newAuthRouter(h, sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"username":"x"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestLogin_Success(t *testing.T) {
	sessions := services.NewSessionStore()
	h := New(stubAuthSvc{verify: func(_ context.Context, u, p string) bool {
		return u == "alice" && p == "s3cret"
	}}, sessions, stubResearchSvc{}, stubReportSvc{})
	r := newAuthRouter(h, sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		bytes.NewBufferString(`{"username":"alice","password":"s3cret"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Token == "" || resp.Username != "alice" {
		t.Fatalf("resp = %+v", resp)
	}
	// Token is live in the session store.
	if u, ok := sessions.Current(resp.Token); !ok || u != "alice" {
		t.Fatalf("token not registered: %q %v", u, ok)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	sessions := services.NewSessionStore()
	h := New(stubAuthSvc{verify: func(context.Context, string, string) bool { return false }},
		sessions, stubResearchSvc{}, stubReportSvc{})
	r := newAuthRouter(h, sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		bytes.NewBufferString(`{"username":"alice","password":"nope"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestLogoutAndMe_SessionFlow(t *testing.T) {
	sessions := services.NewSessionStore()
	h := New(stubAuthSvc{}, sessions, stubResearchSvc{}, stubReportSvc{})
	r := newAuthRouter(h, sessions)

	token := sessions.Login("alice")

	// Me with a valid token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(middleware.HeaderSessionToken, token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
	var me MeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil || me.Username != "alice" {
		t.Fatalf("me = %+v, %v", me, err)
	}

	// Logout is a 204 and invalidates the token.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set(middleware.HeaderSessionToken, token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", w.Code)
	}

	// Me now fails.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(middleware.HeaderSessionToken, token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout = %d, want 401", w.Code)
	}

	// Logging out again is still a 204.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set(middleware.HeaderSessionToken, token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("repeat logout status = %d", w.Code)
	}
}

func TestMe_NoToken(t *testing.T) {
	sessions := services.NewSessionStore()
	h := New(stubAuthSvc{}, sessions, stubResearchSvc{}, stubReportSvc{})
	r := newAuthRouter(h, sessions)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
