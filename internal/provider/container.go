package provider

import (
	"github.com/shop-next/internal/cache"
	"github.com/shop-next/internal/config"
	"github.com/shop-next/internal/logger"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/queue"
	"github.com/shop-next/internal/repository"
	"github.com/shop-next/internal/service"
	"github.com/shop-next/internal/session"
)

// Container 依赖注入容器
type Container struct {
	Config       *config.Config
	QueueClient  *queue.Client
	SessionStore session.Store

	// Repositories
	AdminRepo      repository.AdminRepository
	UserRepo       repository.UserRepository
	CategoryRepo   repository.CategoryRepository
	ProductRepo    repository.ProductRepository
	DiscountRepo   repository.DiscountRepository
	PromoCodeRepo  repository.PromoCodeRepository
	PromoUsageRepo repository.PromoUsageRepository

	// Services
	AuthService          *service.AuthService
	UserAuthService      *service.UserAuthService
	CatalogService       *service.CatalogService
	PricingService       *service.PricingService
	PromoService         *service.PromoService
	PromoAdminService    *service.PromoAdminService
	DiscountAdminService *service.DiscountAdminService
	CartService          *service.CartService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:       cfg,
		QueueClient:  queueClient,
		SessionStore: session.NewStore(),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.DiscountRepo = repository.NewDiscountRepository(db)
	c.PromoCodeRepo = repository.NewPromoCodeRepository(db)
	c.PromoUsageRepo = repository.NewPromoUsageRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.PricingService = service.NewPricingService(c.ProductRepo, c.DiscountRepo, c.PromoCodeRepo)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CategoryRepo, c.DiscountRepo, c.PricingService)
	c.PromoService = service.NewPromoService(c.PromoCodeRepo, c.PromoUsageRepo, c.ProductRepo, c.PricingService)
	c.PromoAdminService = service.NewPromoAdminService(c.PromoCodeRepo, c.PromoUsageRepo)
	c.DiscountAdminService = service.NewDiscountAdminService(c.DiscountRepo, c.ProductRepo)
	c.CartService = service.NewCartService(c.ProductRepo, c.PricingService)
}

// Close 释放容器资源
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
}
