package service

import (
	"testing"
	"time"

	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 打开内存库并迁移全部表，同时指向全局 DB 供事务路径使用
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Discount{},
		&models.PromoCode{},
		&models.PromoUsage{},
	)
	if err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:        "test-product",
		Name:        "测试商品",
		PriceAmount: models.MustMoney(price),
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestDiscount(t *testing.T, db *gorm.DB, productID uint, discountType, value string, minQuantity int) *models.Discount {
	t.Helper()
	now := time.Now()
	discount := &models.Discount{
		ProductID:   productID,
		Type:        discountType,
		Value:       models.MustMoney(value),
		StartsAt:    now.Add(-time.Hour),
		EndsAt:      now.Add(time.Hour),
		IsActive:    true,
		MinQuantity: minQuantity,
	}
	if err := db.Create(discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}
	return discount
}

func createTestPromo(t *testing.T, db *gorm.DB, code, promoType, value string, usageLimit int) *models.PromoCode {
	t.Helper()
	now := time.Now()
	promo := &models.PromoCode{
		Code:       models.NormalizePromoCode(code),
		Type:       promoType,
		Value:      models.MustMoney(value),
		StartsAt:   now.Add(-time.Hour),
		EndsAt:     now.Add(time.Hour),
		UsageLimit: usageLimit,
		IsActive:   true,
	}
	if err := db.Create(promo).Error; err != nil {
		t.Fatalf("create promo failed: %v", err)
	}
	return promo
}

func newPricingService(db *gorm.DB) *PricingService {
	return NewPricingService(
		repository.NewProductRepository(db),
		repository.NewDiscountRepository(db),
		repository.NewPromoCodeRepository(db),
	)
}

func newPromoService(db *gorm.DB) *PromoService {
	return NewPromoService(
		repository.NewPromoCodeRepository(db),
		repository.NewPromoUsageRepository(db),
		repository.NewProductRepository(db),
		newPricingService(db),
	)
}
