package handlers

import (
	"errors"
	"net/http"

	"mendwell/models"
	"mendwell/services/role"
	"mendwell/services/socialauth"
	"mendwell/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration and every sign-in path.
type AuthHandler struct {
	Users    user.UserService
	Social   socialauth.Service
	Resolver *role.Resolver
}

// NewAuthHandler wires an auth handler.
func NewAuthHandler(users user.UserService, social socialauth.Service, resolver *role.Resolver) *AuthHandler {
	return &AuthHandler{Users: users, Social: social, Resolver: resolver}
}

// respond resolves the principal's role and attaches it to the auth response.
func (h *AuthHandler) respond(c *gin.Context, resp *user.AuthResponse) {
	resolved := h.Resolver.Resolve(c.Request.Context(), resp.ID, resp.FirstSignup)
	c.JSON(http.StatusOK, gin.H{
		"auth": resp,
		"role": string(resolved),
	})
}

func authError(c *gin.Context, err error) {
	switch {
	case errors.As(err, &user.InvalidCredentialsError{}):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &user.AccountBannedError{}):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &user.EmailTakenError{}):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// RegisterHandler creates a password-based account.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Users.Register(&req)
	if err != nil {
		logger.Warn("registration rejected", zap.Error(err))
		authError(c, err)
		return
	}
	h.respond(c, resp)
}

// LoginHandler authenticates with email and password.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		logger.Warn("login rejected", zap.String("email", req.Email), zap.Error(err))
		authError(c, err)
		return
	}
	h.respond(c, resp)
}

// GoogleSignInHandler authenticates with a Google ID token.
func (h *AuthHandler) GoogleSignInHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profile, err := h.Social.VerifyGoogle(req.IDToken)
	if err != nil {
		logger.Warn("google token rejected", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in failed"})
		return
	}

	resp, err := h.Users.AuthenticateSocial(profile)
	if err != nil {
		authError(c, err)
		return
	}
	h.respond(c, resp)
}

// KakaoSignInHandler authenticates with a Kakao authorization code.
func (h *AuthHandler) KakaoSignInHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profile, err := h.Social.ExchangeKakao(req.Code)
	if err != nil {
		logger.Warn("kakao exchange rejected", zap.Error(err))
		var exchangeErr socialauth.KakaoExchangeError
		if errors.As(err, &exchangeErr) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":       "Kakao sign-in failed",
				"kakaoError":  exchangeErr.Code,
				"description": exchangeErr.Description,
			})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Kakao sign-in failed"})
		return
	}

	resp, err := h.Users.AuthenticateSocial(profile)
	if err != nil {
		authError(c, err)
		return
	}
	h.respond(c, resp)
}

// SignOutHandler closes the session and drops the cached role.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	if err := h.Users.SignOut(userID); err != nil {
		logger.Error("sign-out failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-out failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}
