package queue

import (
	"encoding/json"

	"github.com/shop-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPromoUsageSync 促销码使用计数对账任务
	TaskPromoUsageSync = constants.TaskPromoUsageSync
)

// PromoUsageSyncPayload 对账任务负载，PromoCodeID 为 0 表示对账全部
type PromoUsageSyncPayload struct {
	PromoCodeID uint `json:"promo_code_id"`
}

// NewPromoUsageSyncTask 构造对账任务
func NewPromoUsageSyncTask(payload PromoUsageSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPromoUsageSync, data), nil
}
