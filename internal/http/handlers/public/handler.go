package public

import (
	"time"

	"github.com/shop-next/internal/provider"
)

const defaultSessionTTLHours = 72

// Handler 商城前台接口处理器
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}

func (h *Handler) sessionTTL() time.Duration {
	hours := defaultSessionTTLHours
	if h.Config != nil && h.Config.Session.TTLHours > 0 {
		hours = h.Config.Session.TTLHours
	}
	return time.Duration(hours) * time.Hour
}
