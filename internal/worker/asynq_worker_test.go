package worker

import (
	"context"
	"testing"
	"time"

	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/provider"
	"github.com/shop-next/internal/queue"
	"github.com/shop-next/internal/repository"
	"github.com/shop-next/internal/service"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newWorkerTestContainer(t *testing.T) (*provider.Container, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&models.PromoCode{}, &models.PromoUsage{}, &models.Product{}, &models.Discount{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	productRepo := repository.NewProductRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	promoRepo := repository.NewPromoCodeRepository(db)
	usageRepo := repository.NewPromoUsageRepository(db)
	pricing := service.NewPricingService(productRepo, discountRepo, promoRepo)

	container := &provider.Container{
		PromoService: service.NewPromoService(promoRepo, usageRepo, productRepo, pricing),
	}
	return container, db
}

func TestHandlePromoUsageSyncSingleCode(t *testing.T) {
	container, db := newWorkerTestContainer(t)
	consumer := NewConsumer(container)

	now := time.Now()
	promo := models.PromoCode{
		Code:      "SYNCME",
		Type:      "fixed",
		Value:     models.MustMoney("5.00"),
		StartsAt:  now.Add(-time.Hour),
		EndsAt:    now.Add(time.Hour),
		UsedCount: 99,
		IsActive:  true,
	}
	if err := db.Create(&promo).Error; err != nil {
		t.Fatalf("create promo failed: %v", err)
	}
	for i := uint(1); i <= 3; i++ {
		usage := models.PromoUsage{
			PromoCodeID:    promo.ID,
			UserID:         i,
			ProductID:      1,
			OrderAmount:    models.MustMoney("30.00"),
			DiscountAmount: models.MustMoney("5.00"),
			UsedAt:         now,
		}
		if err := db.Create(&usage).Error; err != nil {
			t.Fatalf("create usage failed: %v", err)
		}
	}

	task, err := queue.NewPromoUsageSyncTask(queue.PromoUsageSyncPayload{PromoCodeID: promo.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePromoUsageSync(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	var reloaded models.PromoCode
	if err := db.First(&reloaded, promo.ID).Error; err != nil {
		t.Fatalf("reload promo failed: %v", err)
	}
	if reloaded.UsedCount != 3 {
		t.Fatalf("used_count want 3 got %d", reloaded.UsedCount)
	}
}

func TestHandlePromoUsageSyncAllCodes(t *testing.T) {
	container, db := newWorkerTestContainer(t)
	consumer := NewConsumer(container)

	now := time.Now()
	promos := []models.PromoCode{
		{Code: "CODEA", Type: "fixed", Value: models.MustMoney("1.00"), StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), UsedCount: 7, IsActive: true},
		{Code: "CODEB", Type: "fixed", Value: models.MustMoney("1.00"), StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), UsedCount: 0, IsActive: true},
	}
	for i := range promos {
		if err := db.Create(&promos[i]).Error; err != nil {
			t.Fatalf("create promo failed: %v", err)
		}
	}
	usage := models.PromoUsage{
		PromoCodeID:    promos[1].ID,
		UserID:         1,
		ProductID:      1,
		OrderAmount:    models.MustMoney("10.00"),
		DiscountAmount: models.MustMoney("1.00"),
		UsedAt:         now,
	}
	if err := db.Create(&usage).Error; err != nil {
		t.Fatalf("create usage failed: %v", err)
	}

	task, err := queue.NewPromoUsageSyncTask(queue.PromoUsageSyncPayload{})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePromoUsageSync(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	var a, b models.PromoCode
	if err := db.First(&a, promos[0].ID).Error; err != nil {
		t.Fatalf("reload promo failed: %v", err)
	}
	if err := db.First(&b, promos[1].ID).Error; err != nil {
		t.Fatalf("reload promo failed: %v", err)
	}
	if a.UsedCount != 0 {
		t.Fatalf("code a used_count want 0 got %d", a.UsedCount)
	}
	if b.UsedCount != 1 {
		t.Fatalf("code b used_count want 1 got %d", b.UsedCount)
	}
}
