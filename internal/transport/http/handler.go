package handlers

import (
	"net/http"

	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/middleware"
	"lmsplatform/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

const (
	refreshCookie    = "refresh_token"
	refreshCookieAge = 7 * 24 * 3600
	accessCookieAge  = 15 * 60
)

type AuthHandler struct {
	auth         *usecase.AuthUseCase
	secureCookie bool
	log          *logger.Logger
}

func NewAuthHandler(auth *usecase.AuthUseCase, secureCookie bool, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie, log: log.With("handler", "Auth")}
}

type registerReq struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6"`
	FullName   string  `json:"fullName"`
	Grade      *string `json:"grade"`
	Division   *string `json:"division"`
	Curriculum *string `json:"curriculum"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.Registration{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Grade:      req.Grade,
		Division:   req.Division,
		Curriculum: req.Curriculum,
	})
	if err != nil {
		writeError(c, h.log, "[AUTH_REGISTER]", err)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, "[AUTH_LOGIN]", err)
		return
	}

	h.setCookies(c, tokens)
	c.JSON(http.StatusOK, gin.H{"accessToken": tokens.AccessToken})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token := h.refreshToken(c)
	if token == "" {
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), token)
	if err != nil {
		writeError(c, h.log, "[AUTH_REFRESH]", err)
		return
	}

	h.setCookies(c, tokens)
	c.JSON(http.StatusOK, gin.H{"accessToken": tokens.AccessToken})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), h.refreshToken(c)); err != nil {
		writeError(c, h.log, "[AUTH_LOGOUT]", err)
		return
	}

	c.SetCookie(refreshCookie, "", -1, "/", "", h.secureCookie, true)
	c.SetCookie(middleware.AccessCookie, "", -1, "/", "", h.secureCookie, true)
	c.Status(http.StatusNoContent)
}

// refreshToken prefers the cookie and falls back to the JSON body.
func (h *AuthHandler) refreshToken(c *gin.Context) string {
	if token, err := c.Cookie(refreshCookie); err == nil && token != "" {
		return token
	}
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func (h *AuthHandler) setCookies(c *gin.Context, tokens usecase.Tokens) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, tokens.RefreshToken, refreshCookieAge, "/", "", h.secureCookie, true)
	c.SetCookie(middleware.AccessCookie, tokens.AccessToken, accessCookieAge, "/", "", h.secureCookie, true)
}
