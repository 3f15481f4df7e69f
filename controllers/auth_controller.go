package controllers

import (
	"net/http"
	"time"

	"github.com/community-board/api-go/apperrors"
	"github.com/community-board/api-go/services"
	"github.com/gin-gonic/gin"
)

const (
	refreshCookieName = "refreshToken"
	refreshCookiePath = "/api/auth"
)

type AuthController struct {
	Auth         services.AuthService
	CookieSecure bool
}

func NewAuthController(auth services.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{Auth: auth, CookieSecure: cookieSecure}
}

type GoogleLoginRequest struct {
	Code string `json:"code" binding:"required"`
}

func (ac *AuthController) setRefreshCookie(c *gin.Context, pair *services.TokenPair) {
	maxAge := int(time.Until(pair.RefreshExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, pair.RefreshToken, maxAge, refreshCookiePath, "", ac.CookieSecure, true)
}

func clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", false, true)
}

// Login godoc
// @Summary Sign in with email and password
// @Description Returns an access token; the refresh token is set as an HttpOnly cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} services.TokenPair
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := ac.Auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.setRefreshCookie(c, pair)
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: pair})
}

// RefreshToken godoc
// @Summary Rotate the refresh cookie and issue a new access token
// @Tags auth
// @Produce json
// @Success 200 {object} services.TokenPair
// @Router /auth/refresh [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	token, err := c.Cookie(refreshCookieName)
	if err != nil || token == "" {
		respondError(c, apperrors.Unauthorized(services.CodeInvalidToken))
		return
	}

	pair, err := ac.Auth.Refresh(c.Request.Context(), token)
	if err != nil {
		if apperrors.Is(err, apperrors.KindUnauthorized) {
			clearRefreshCookie(c)
		}
		respondError(c, err)
		return
	}

	ac.setRefreshCookie(c, pair)
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: pair})
}

func (ac *AuthController) Logout(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)
	if err := ac.Auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	clearRefreshCookie(c)
	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Logged out successfully"})
}

// GoogleLogin godoc
// @Summary Sign in with a Google authorization code
// @Description Only accounts already registered with the same email can sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body GoogleLoginRequest true "Authorization code"
// @Success 200 {object} services.TokenPair
// @Router /auth/google [post]
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := ac.Auth.GoogleLogin(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.setRefreshCookie(c, pair)
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: pair})
}
