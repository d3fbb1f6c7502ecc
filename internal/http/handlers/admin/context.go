package admin

import (
	"github.com/shop-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getAdminID(c *gin.Context) (uint, bool) {
	return shared.GetContextUint(c, "admin_id", "请先登录", "管理员身份解析失败")
}
