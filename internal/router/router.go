package router

import (
	"fmt"
	"strings"

	"github.com/shop-next/internal/cache"
	"github.com/shop-next/internal/config"
	adminhandlers "github.com/shop-next/internal/http/handlers/admin"
	publichandlers "github.com/shop-next/internal/http/handlers/public"
	"github.com/shop-next/internal/http/response"
	"github.com/shop-next/internal/logger"
	"github.com/shop-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "shop"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	sessionMW := SessionMiddleware(cfg.Session, c.SessionStore)

	apiV1 := r.Group("/api/v1")
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
			public.GET("/products/:slug/quote", sessionMW, publicHandler.QuoteProduct)
		}

		// 访客购物车接口（基于会话 cookie）
		cart := apiV1.Group("/cart", sessionMW)
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.DELETE("/items/:product_id", publicHandler.DeleteCartItem)
			cart.DELETE("", publicHandler.ClearCart)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Me)
			user.POST("/promo/apply", sessionMW, publicHandler.ApplyPromo)
			user.POST("/promo/remove", sessionMW, publicHandler.RemovePromo)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)

			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.GET("/me", adminHandler.Me)
				authorized.PUT("/password", adminHandler.ChangePassword)

				// 折扣管理
				authorized.GET("/discounts", adminHandler.ListDiscounts)
				authorized.GET("/discounts/:id", adminHandler.GetDiscount)
				authorized.POST("/discounts", adminHandler.CreateDiscount)
				authorized.PUT("/discounts/:id", adminHandler.UpdateDiscount)
				authorized.DELETE("/discounts/:id", adminHandler.DeleteDiscount)
				authorized.POST("/discounts/activate", adminHandler.ActivateDiscounts)
				authorized.POST("/discounts/deactivate", adminHandler.DeactivateDiscounts)

				// 促销码管理
				authorized.GET("/promo-codes", adminHandler.ListPromoCodes)
				authorized.GET("/promo-codes/:id", adminHandler.GetPromoCode)
				authorized.POST("/promo-codes", adminHandler.CreatePromoCode)
				authorized.PUT("/promo-codes/:id", adminHandler.UpdatePromoCode)
				authorized.DELETE("/promo-codes/:id", adminHandler.DeletePromoCode)
				authorized.POST("/promo-codes/activate", adminHandler.ActivatePromoCodes)
				authorized.POST("/promo-codes/deactivate", adminHandler.DeactivatePromoCodes)
				authorized.POST("/promo-codes/reset-usage", adminHandler.ResetPromoUsage)
				authorized.GET("/promo-codes/:id/stats", adminHandler.PromoCodeStats)
				authorized.GET("/promo-codes/:id/usages", adminHandler.PromoCodeUsages)
				authorized.POST("/promo-codes/sync-usage", adminHandler.SyncPromoUsage)
			}
		}
	}

	return r
}
