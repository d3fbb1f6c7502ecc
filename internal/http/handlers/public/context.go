package public

import (
	"github.com/shop-next/internal/http/handlers/shared"
	"github.com/shop-next/internal/http/response"
	"github.com/shop-next/internal/session"

	"github.com/gin-gonic/gin"
)

// ContextSessionKey 中间件写入会话状态使用的 context key
const ContextSessionKey = "session_state"

func (h *Handler) getUserID(c *gin.Context) (uint, bool) {
	return shared.GetContextUint(c, "user_id", "请先登录", "用户身份解析失败")
}

// currentSession 取出中间件注入的会话状态
func (h *Handler) currentSession(c *gin.Context) (*session.State, bool) {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		response.Error(c, response.CodeInternal, "会话未初始化")
		return nil, false
	}
	state, ok := raw.(*session.State)
	if !ok || state == nil {
		response.Error(c, response.CodeInternal, "会话状态不可用")
		return nil, false
	}
	return state, true
}

// saveSession 持久化会话状态，失败时记录日志并返回错误响应
func (h *Handler) saveSession(c *gin.Context, state *session.State) bool {
	if err := h.SessionStore.Save(c.Request.Context(), state, h.sessionTTL()); err != nil {
		shared.RequestLog(c).Errorw("session_save_failed", "session_id", state.ID, "error", err)
		response.Error(c, response.CodeInternal, "会话保存失败")
		return false
	}
	return true
}
