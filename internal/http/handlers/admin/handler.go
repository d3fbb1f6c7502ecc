package admin

import (
	"github.com/shop-next/internal/provider"
)

// Handler 管理后台接口处理器
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}
