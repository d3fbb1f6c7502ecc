package shared

import (
	"github.com/shop-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint 从 gin context 中取出 uint 类型的值，缺失或类型不符时返回错误响应。
func GetContextUint(c *gin.Context, key string, missingMsg, invalidMsg string) (uint, bool) {
	raw, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, missingMsg)
		return 0, false
	}
	value, ok := raw.(uint)
	if !ok || value == 0 {
		response.Error(c, response.CodeInternal, invalidMsg)
		return 0, false
	}
	return value, true
}
