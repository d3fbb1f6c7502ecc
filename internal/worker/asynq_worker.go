package worker

import (
	"context"
	"encoding/json"

	"github.com/shop-next/internal/logger"
	"github.com/shop-next/internal/provider"
	"github.com/shop-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPromoUsageSync, c.handlePromoUsageSync)
}

func (c *Consumer) handlePromoUsageSync(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_promo_usage_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PromoUsageSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_promo_usage_sync_unmarshal_failed", "error", err)
		return err
	}
	if c.PromoService == nil {
		logger.Warnw("worker_promo_usage_sync_skip_service_nil", "promo_code_id", payload.PromoCodeID)
		return nil
	}

	if payload.PromoCodeID == 0 {
		synced, err := c.PromoService.SyncAllUsageCounts()
		if err != nil {
			logger.Warnw("worker_promo_usage_sync_all_failed", "error", err)
			return err
		}
		logger.Debugw("worker_promo_usage_sync_all_done", "synced", synced)
		return nil
	}

	count, err := c.PromoService.UpdateUsageCount(payload.PromoCodeID)
	if err != nil {
		logger.Warnw("worker_promo_usage_sync_failed", "promo_code_id", payload.PromoCodeID, "error", err)
		return err
	}
	logger.Debugw("worker_promo_usage_sync_done", "promo_code_id", payload.PromoCodeID, "used_count", count)
	return nil
}
