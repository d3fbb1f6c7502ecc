package admin

import (
	"github.com/shop-next/internal/http/handlers/shared"
	"github.com/shop-next/internal/http/response"
	"github.com/shop-next/internal/models"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Admin     *models.Admin `json:"admin"`
	Token     string        `json:"token"`
	ExpiresAt int64         `json:"expires_at"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, "登录失败")
		return
	}

	shared.RequestLog(c).Infow("admin_login", "admin_id", admin.ID, "username", admin.Username)
	response.Success(c, loginResponse{Admin: admin, Token: token, ExpiresAt: expiresAt.Unix()})
}

// ChangePassword 修改当前管理员密码
func (h *Handler) ChangePassword(c *gin.Context) {
	adminID, ok := h.getAdminID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}
	if len(req.NewPassword) < 6 {
		response.BadRequest(c, "新密码长度不能少于 6 位")
		return
	}

	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, "修改密码失败")
		return
	}
	response.SuccessWithMsg(c, "密码修改成功", nil)
}

// Me 返回当前管理员信息
func (h *Handler) Me(c *gin.Context) {
	adminID, ok := h.getAdminID(c)
	if !ok {
		return
	}

	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "获取管理员信息失败", err)
		return
	}
	if admin == nil {
		response.NotFound(c, "管理员不存在")
		return
	}
	response.Success(c, admin)
}
