package repository

import (
	"testing"
	"time"

	"github.com/shop-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.PromoCode{}, &models.PromoUsage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestPromoUsageUniqueTriple(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromoUsageRepository(db)

	usage := &models.PromoUsage{
		PromoCodeID:    1,
		UserID:         7,
		ProductID:      3,
		OrderAmount:    models.MustMoney("50.00"),
		DiscountAmount: models.MustMoney("15.00"),
		UsedAt:         time.Now(),
	}
	if err := repo.Create(usage); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := &models.PromoUsage{
		PromoCodeID:    1,
		UserID:         7,
		ProductID:      3,
		OrderAmount:    models.MustMoney("50.00"),
		DiscountAmount: models.MustMoney("15.00"),
		UsedAt:         time.Now(),
	}
	err := repo.Create(dup)
	if err == nil {
		t.Fatal("expected unique violation on duplicate triple")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	// 不同商品的同码同用户组合不冲突
	other := &models.PromoUsage{
		PromoCodeID:    1,
		UserID:         7,
		ProductID:      4,
		OrderAmount:    models.MustMoney("20.00"),
		DiscountAmount: models.MustMoney("2.00"),
		UsedAt:         time.Now(),
	}
	if err := repo.Create(other); err != nil {
		t.Fatalf("create with distinct product: %v", err)
	}
}

func TestPromoUsageCountAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPromoUsageRepository(db)

	for i := uint(1); i <= 3; i++ {
		usage := &models.PromoUsage{
			PromoCodeID:    9,
			UserID:         i,
			OrderAmount:    models.MustMoney("10.00"),
			DiscountAmount: models.MustMoney("1.00"),
			UsedAt:         time.Now(),
		}
		if err := repo.Create(usage); err != nil {
			t.Fatalf("create usage %d: %v", i, err)
		}
	}

	count, err := repo.CountByCode(9)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}

	total, err := repo.SumDiscountByCode(9)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if total.String() != "3" && total.String() != "3.00" {
		t.Fatalf("expected total 3, got %s", total.String())
	}

	deleted, err := repo.DeleteByCode(9)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted rows, got %d", deleted)
	}

	count, err = repo.CountByCode(9)
	if err != nil {
		t.Fatalf("recount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count 0 after delete, got %d", count)
	}
}
