package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vellum-cms/vellum-backend/internal/common"
	"github.com/vellum-cms/vellum-backend/internal/domain"
	"github.com/vellum-cms/vellum-backend/internal/middleware"
	"github.com/vellum-cms/vellum-backend/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// refreshRequest is the body fallback when no refresh cookie is present
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register godoc
// @Summary      계정 생성
// @Description  새 플랫폼 계정을 생성합니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.RegisterRequest  true  "계정 생성 요청"
// @Success      201  {object}  common.Response{data=domain.UserResponse}
// @Failure      400  {object}  common.Response
// @Failure      409  {object}  common.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	user, err := h.service.Register(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.CreatedResponse(c, user)
}

// Login godoc
// @Summary      로그인
// @Description  인증 후 access token을 반환합니다. refresh token은 httpOnly 쿠키로 설정됩니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.LoginRequest  true  "로그인 요청"
// @Success      200  {object}  common.Response
// @Failure      401  {object}  common.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	resp, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// refresh_token은 httpOnly Cookie로 설정 (XSS 방지)
	h.setRefreshTokenCookie(c, resp.RefreshToken)

	// body에는 access_token과 user 정보만 반환
	common.SuccessResponse(c, gin.H{
		"access_token": resp.AccessToken,
		"expires_in":   resp.ExpiresIn,
		"user":         resp.User,
	})
}

// RefreshToken godoc
// @Summary      토큰 갱신
// @Description  refresh token으로 새 토큰 쌍을 발급합니다. 쿠키 우선, body fallback
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  common.Response
// @Failure      401  {object}  common.Response
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	// Cookie에서 refresh_token 읽기, 없으면 body에서
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		var req refreshRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.RefreshToken == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "리프레시 토큰이 없습니다", nil)
			return
		}
		refreshToken = req.RefreshToken
	}

	tokens, err := h.service.RefreshToken(refreshToken)
	if err != nil {
		// 유효하지 않은 토큰이면 Cookie도 삭제
		h.clearRefreshTokenCookie(c)
		handleServiceError(c, err)
		return
	}

	h.setRefreshTokenCookie(c, tokens.RefreshToken)

	common.SuccessResponse(c, gin.H{
		"access_token": tokens.AccessToken,
		"expires_in":   tokens.ExpiresIn,
	})
}

// Logout godoc
// @Summary      로그아웃
// @Description  refresh token 쿠키를 삭제합니다
// @Tags         auth
// @Produce      json
// @Success      200  {object}  common.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearRefreshTokenCookie(c)
	common.SuccessResponse(c, gin.H{"message": "로그아웃되었습니다"})
}

// Me godoc
// @Summary      내 정보 조회
// @Description  인증된 사용자의 계정 정보를 조회합니다
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.Response{data=domain.UserResponse}
// @Failure      401  {object}  common.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.Me(middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, user)
}

// setRefreshTokenCookie sets refresh token as httpOnly cookie
// 보안: httpOnly=true로 JavaScript에서 접근 불가 (XSS 방지)
// 보안: secure=true로 HTTPS에서만 전송
func (h *AuthHandler) setRefreshTokenCookie(c *gin.Context, token string) {
	maxAge := 7 * 24 * 60 * 60 // 7일 (초 단위)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("refresh_token", token, maxAge, "/", "", true, true)
}

// clearRefreshTokenCookie removes refresh token cookie
func (h *AuthHandler) clearRefreshTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("refresh_token", "", -1, "/", "", true, true)
}
