package worker

import (
	"context"
	"errors"
	"time"

	"github.com/shop-next/internal/config"
	"github.com/shop-next/internal/logger"
	"github.com/shop-next/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultUsageSyncInterval = 30 * time.Minute

// Service 异步队列服务
type Service struct {
	name         string
	server       *asynq.Server
	mux          *asynq.ServeMux
	consumer     *Consumer
	syncInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	syncInterval := defaultUsageSyncInterval
	if cfg.UsageSyncIntervalMin > 0 {
		syncInterval = time.Duration(cfg.UsageSyncIntervalMin) * time.Minute
	}
	return &Service{
		name:         "worker",
		server:       server,
		mux:          mux,
		consumer:     consumer,
		syncInterval: syncInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.PromoService != nil {
		go s.runUsageSyncLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runUsageSyncLoop 周期性地把使用计数与台账对齐
func (s *Service) runUsageSyncLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.PromoService == nil {
		return
	}
	runOnce := func() {
		synced, err := s.consumer.PromoService.SyncAllUsageCounts()
		if err != nil {
			logger.Warnw("worker_usage_sync_loop_failed", "error", err)
			return
		}
		logger.Debugw("worker_usage_sync_loop_done", "synced", synced)
	}
	runOnce()

	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
