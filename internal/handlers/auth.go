// Package handlers contains HTTP request handlers for the auth service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelstream/auth-service/internal/logger"
	"github.com/reelstream/auth-service/internal/metrics"
	"github.com/reelstream/auth-service/internal/service"
)

// Client-facing messages. Kept stable because the frontend matches on
// them.
const (
	msgAllFieldsRequired  = "All fields are required"
	msgDuplicateEmail     = "Email already exists"
	msgDuplicateUsername  = "Username already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgNoToken            = "Authorization denied, no token"
	msgTokenInvalid       = "Token is not valid"
	msgUserNotFound       = "User not found"
	msgInternalError      = "Internal Server Error"
	msgSignedUp           = "User signed up successfully"
	msgLoggedIn           = "Logged in successfully"
	msgLoggedOut          = "Logged out successfully"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	cookies     *CookieHelper
	metrics     *metrics.Metrics
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, cookies *CookieHelper, m *metrics.Metrics, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		metrics:     m,
		log:         log,
	}
}

// SignupRequest represents the signup request payload.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest represents the signin request payload.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup godoc
// @Summary Register a new account
// @Description Create a user and start a session via the token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.SignupAttempts.WithLabelValues(metrics.OutcomeValidation).Inc()
		respondError(c, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}

	session, err := h.authService.SignUp(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.signupError(c, err)
		return
	}

	h.metrics.SignupAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	h.cookies.SetSessionCookie(c, session.Token)
	c.JSON(http.StatusCreated, gin.H{
		"user":    session.User,
		"message": msgSignedUp,
	})
}

func (h *AuthHandler) signupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAllFieldsRequired):
		h.metrics.SignupAttempts.WithLabelValues(metrics.OutcomeValidation).Inc()
		respondError(c, http.StatusBadRequest, msgAllFieldsRequired)
	case errors.Is(err, service.ErrDuplicateEmail):
		h.metrics.SignupAttempts.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		respondError(c, http.StatusBadRequest, msgDuplicateEmail)
	case errors.Is(err, service.ErrDuplicateUsername):
		h.metrics.SignupAttempts.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		respondError(c, http.StatusBadRequest, msgDuplicateUsername)
	default:
		h.metrics.SignupAttempts.WithLabelValues(metrics.OutcomeError).Inc()
		logAndRespondError(c, h.log, http.StatusInternalServerError, err, msgInternalError)
	}
}

// Signin godoc
// @Summary Sign in
// @Description Authenticate and start a session via the token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.SigninAttempts.WithLabelValues(metrics.OutcomeValidation).Inc()
		respondError(c, http.StatusBadRequest, msgAllFieldsRequired)
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAllFieldsRequired):
			h.metrics.SigninAttempts.WithLabelValues(metrics.OutcomeValidation).Inc()
			respondError(c, http.StatusBadRequest, msgAllFieldsRequired)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.metrics.SigninAttempts.WithLabelValues(metrics.OutcomeRejected).Inc()
			respondError(c, http.StatusBadRequest, msgInvalidCredentials)
		default:
			h.metrics.SigninAttempts.WithLabelValues(metrics.OutcomeError).Inc()
			logAndRespondError(c, h.log, http.StatusInternalServerError, err, msgInternalError)
		}
		return
	}

	h.metrics.SigninAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()
	h.cookies.SetSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, gin.H{
		"user":    session.User,
		"message": msgLoggedIn,
	})
}

// Me godoc
// @Summary Current user
// @Description Resolve the session cookie to the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	token := h.cookies.GetSessionToken(c)
	if token == "" {
		respondError(c, http.StatusUnauthorized, msgNoToken)
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired), errors.Is(err, service.ErrTokenInvalid):
			// Both are unauthorized to the caller; the distinction
			// lives in the log only.
			h.log.Info("session token rejected", "error", err)
			respondError(c, http.StatusUnauthorized, msgTokenInvalid)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, msgUserNotFound)
		default:
			logAndRespondError(c, h.log, http.StatusInternalServerError, err, msgInternalError)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout godoc
// @Summary Log out
// @Description Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Idempotent: clearing with no cookie present is not an error.
	h.cookies.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": msgLoggedOut})
}
