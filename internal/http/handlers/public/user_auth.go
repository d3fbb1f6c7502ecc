package public

import (
	"github.com/shop-next/internal/http/handlers/shared"
	"github.com/shop-next/internal/http/response"
	"github.com/shop-next/internal/models"

	"github.com/gin-gonic/gin"
)

type userRegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

type userLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userAuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
}

// Register 注册新用户并直接签发令牌
func (h *Handler) Register(c *gin.Context) {
	var req userRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	user, err := h.UserAuthService.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondWithMappedError(c, userAuthErrorMappings, err, "注册失败")
		return
	}

	token, expiresAt, err := h.UserAuthService.GenerateUserJWT(user)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "令牌签发失败", err)
		return
	}

	response.Success(c, userAuthResponse{User: user, Token: token, ExpiresAt: expiresAt.Unix()})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req userLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, userAuthErrorMappings, err, "登录失败")
		return
	}

	response.Success(c, userAuthResponse{User: user, Token: token, ExpiresAt: expiresAt.Unix()})
}

// Me 返回当前登录用户信息
func (h *Handler) Me(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "获取用户信息失败", err)
		return
	}
	if user == nil {
		response.NotFound(c, "用户不存在")
		return
	}
	response.Success(c, user)
}
