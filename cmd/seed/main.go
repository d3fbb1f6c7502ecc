package main

import (
	"time"

	"github.com/shop-next/internal/config"
	"github.com/shop-next/internal/constants"
	"github.com/shop-next/internal/logger"
	"github.com/shop-next/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "electronics", Name: "电子产品", Description: "数码与电子设备", IsActive: true, SortOrder: 1},
		{Slug: "lifestyle", Name: "生活用品", Description: "日常生活好物", IsActive: true, SortOrder: 2},
		{Slug: "accessories", Name: "数码配件", Description: "配件与周边", IsActive: true, SortOrder: 3},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "lifestyle", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	products := []models.Product{
		{
			Slug:          "wireless-earphones",
			Name:          "无线蓝牙耳机",
			Description:   "高品质音质，长续航，舒适佩戴",
			PriceAmount:   models.MustMoney("99.99"),
			PriceCurrency: "UAH",
			CategoryID:    categoryIDs["electronics"],
			IsActive:      true,
			Featured:      true,
			SortOrder:     1,
		},
		{
			Slug:          "smart-watch",
			Name:          "智能手表",
			Description:   "健康监测，消息提醒，超长待机",
			PriceAmount:   models.MustMoney("199.00"),
			PriceCurrency: "UAH",
			CategoryID:    categoryIDs["electronics"],
			IsActive:      true,
			SortOrder:     2,
		},
		{
			Slug:          "thermos-bottle",
			Name:          "保温杯",
			Description:   "24 小时保温保冷",
			PriceAmount:   models.MustMoney("25.50"),
			PriceCurrency: "UAH",
			CategoryID:    categoryIDs["lifestyle"],
			IsActive:      true,
			SortOrder:     3,
		},
		{
			Slug:          "usb-c-cable",
			Name:          "USB-C 快充线",
			Description:   "双头 Type-C，支持 100W 快充",
			PriceAmount:   models.MustMoney("9.90"),
			PriceCurrency: "UAH",
			CategoryID:    categoryIDs["accessories"],
			IsActive:      true,
			SortOrder:     4,
		},
	}

	productIDs := map[string]uint{}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
				continue
			}
			stdLog.Printf("Created product: %s", product.Slug)
			productIDs[product.Slug] = product.ID
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
			productIDs[product.Slug] = existing.ID
		}
	}

	now := time.Now()

	// 添加折扣
	discounts := []models.Discount{
		{
			ProductID:   productIDs["wireless-earphones"],
			Type:        constants.DiscountTypePercentage,
			Value:       models.MustMoney("10"),
			StartsAt:    now.AddDate(0, 0, -1),
			EndsAt:      now.AddDate(0, 1, 0),
			IsActive:    true,
			MinQuantity: 2,
			Description: "买二件享九折",
		},
		{
			ProductID:   productIDs["smart-watch"],
			Type:        constants.DiscountTypeFixed,
			Value:       models.MustMoney("20.00"),
			StartsAt:    now.AddDate(0, 0, -1),
			EndsAt:      now.AddDate(0, 0, 14),
			IsActive:    true,
			MinQuantity: 1,
			Description: "限时立减 20",
		},
	}

	for _, discount := range discounts {
		if discount.ProductID == 0 {
			continue
		}
		var count int64
		models.DB.Model(&models.Discount{}).
			Where("product_id = ? AND type = ?", discount.ProductID, discount.Type).
			Count(&count)
		if count > 0 {
			stdLog.Printf("Discount already exists for product %d", discount.ProductID)
			continue
		}
		if err := models.DB.Create(&discount).Error; err != nil {
			stdLog.Printf("Failed to create discount for product %d: %v", discount.ProductID, err)
		} else {
			stdLog.Printf("Created discount for product %d", discount.ProductID)
		}
	}

	// 添加促销码
	promoCodes := []models.PromoCode{
		{
			Code:           "SAVE10",
			Type:           constants.PromoTypeFixed,
			Value:          models.MustMoney("10.00"),
			StartsAt:       now.AddDate(0, 0, -1),
			EndsAt:         now.AddDate(0, 3, 0),
			UsageLimit:     100,
			MinOrderAmount: models.MustMoney("20.00"),
			IsActive:       true,
			Description:    "满 20 减 10",
		},
		{
			Code:           "WELCOME15",
			Type:           constants.PromoTypePercentage,
			Value:          models.MustMoney("15"),
			StartsAt:       now.AddDate(0, 0, -1),
			EndsAt:         now.AddDate(0, 1, 0),
			UsageLimit:     0,
			MinOrderAmount: models.MustMoney("0"),
			IsActive:       true,
			Description:    "新客 85 折",
		},
		{
			Code:           "FREESHIP",
			Type:           constants.PromoTypeFreeShipping,
			Value:          models.MustMoney("0"),
			StartsAt:       now.AddDate(0, 0, -1),
			EndsAt:         now.AddDate(0, 6, 0),
			UsageLimit:     0,
			MinOrderAmount: models.MustMoney("50.00"),
			IsActive:       true,
			Description:    "满 50 免运费",
		},
	}

	for _, promo := range promoCodes {
		var existing models.PromoCode
		if err := models.DB.Where("code = ?", promo.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&promo).Error; err != nil {
				stdLog.Printf("Failed to create promo code %s: %v", promo.Code, err)
			} else {
				stdLog.Printf("Created promo code: %s", promo.Code)
			}
		} else {
			stdLog.Printf("Promo code already exists: %s", promo.Code)
		}
	}

	stdLog.Printf("Seed completed")
}
