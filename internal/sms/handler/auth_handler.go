package handler

import (
	"errors"
	"strconv"

	"github.com/bitfantasy/nimo-sms/internal/sms/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login 登录，返回访问令牌与用户信息
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			Unauthorized(c, "Invalid email or password")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, gin.H{
		"access_token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Me 获取当前登录用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	id, err := strconv.ParseUint(GetUserID(c), 10, 32)
	if err != nil {
		Unauthorized(c, "Invalid token subject")
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), uint(id))
	if err != nil {
		NotFound(c, "User not found")
		return
	}

	Success(c, user)
}
