// Auth HTTP handlers.
//
// This file exposes REST endpoints for the credential store and session
// lifecycle:
//   - POST /auth/register  (create credentials)
//   - POST /auth/login     (verify credentials, mint session token)
//   - POST /auth/logout    (clear session, idempotent)
//   - GET  /auth/me        (current session identity)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-research-backend/internal/http/middleware"
	"github.com/tbourn/go-research-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AuthService defines credential operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// Register creates a credential record for username.
	Register(ctx context.Context, username, password string) error
	// Verify reports whether the username/password pair is valid.
	Verify(ctx context.Context, username, password string) bool
}

// SessionManager defines session lifecycle operations. Login must only be
// called after Verify succeeds.
type SessionManager interface {
	Login(username string) string
	Logout(token string)
	Current(token string) (string, bool)
}

//
// DTOs
//

// CredentialsRequest is the JSON payload for register and login.
type CredentialsRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// RegisterResponse confirms a created credential record.
type RegisterResponse struct {
	Username string `json:"username" example:"alice"`
}

// LoginResponse carries the session token minted for a verified login.
type LoginResponse struct {
	Token    string `json:"token" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Username string `json:"username" example:"alice"`
}

// MeResponse reports the identity behind the presented session token.
type MeResponse struct {
	Username string `json:"username" example:"alice"`
}

//
// Handlers
//

// Register godoc
// @ID          register
// @Summary     Register a new user
// @Description Creates a credential record. Usernames are unique; passwords must be at least 4 characters.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CredentialsRequest  true  "Credentials"
//
// @Success     201  {object}  handlers.RegisterResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Username taken"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and password required")
		return
	}

	err := h.authSvc.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusCreated, RegisterResponse{Username: strings.TrimSpace(req.Username)})
	case errors.Is(err, services.ErrEmptyUsername):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username is empty")
	case errors.Is(err, services.ErrPasswordTooShort):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "password must be at least 4 characters")
	case errors.Is(err, services.ErrUsernameTaken):
		fail(c, http.StatusConflict, ErrCodeConflict, "username already exists")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeRegisterFailed, err.Error())
	}
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies credentials and returns a session token for the X-Session-Token header.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CredentialsRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.LoginResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username and password required")
		return
	}

	if !h.authSvc.Verify(c.Request.Context(), req.Username, req.Password) {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid username or password")
		return
	}

	token := h.sessions.Login(req.Username)
	ok(c, http.StatusOK, LoginResponse{Token: token, Username: req.Username})
}

// Logout godoc
// @ID          logout
// @Summary     Log out
// @Description Clears the session behind the presented token. Idempotent: unknown tokens are a no-op.
// @Tags        Auth
// @Produce     json
//
// @Param       X-Session-Token  header  string  false  "Session token"
//
// @Success     204  {string}  string  "No Content"
// @Router      /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	if token := c.GetHeader(middleware.HeaderSessionToken); token != "" {
		h.sessions.Logout(token)
	}
	noContent(c)
}

// Me godoc
// @ID          me
// @Summary     Current user
// @Description Returns the username behind the presented session token.
// @Tags        Auth
// @Produce     json
//
// @Param       X-Session-Token  header  string  true  "Session token"
//
// @Success     200  {object}  handlers.MeResponse
// @Failure     401  {object}  handlers.ErrorResponse  "No valid session"
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	username, okUser := middleware.SessionUser(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "valid session token required")
		return
	}
	ok(c, http.StatusOK, MeResponse{Username: username})
}
