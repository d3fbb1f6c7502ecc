package service

import (
	"testing"
	"time"

	"github.com/shop-next/internal/constants"
	"github.com/shop-next/internal/models"
)

func TestValidateNormalizesCode(t *testing.T) {
	db := newTestDB(t)
	createTestPromo(t, db, "SAVE10", constants.PromoTypeFixed, "15.00", 0)

	svc := newPromoService(db)
	promo, err := svc.Validate("  sa ve 10  ", time.Now())
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if promo.Code != "SAVE10" {
		t.Fatalf("expected SAVE10, got %s", promo.Code)
	}
}

func TestValidateRejectsShortAndUnknownCodes(t *testing.T) {
	db := newTestDB(t)
	svc := newPromoService(db)

	if _, err := svc.Validate("ab", time.Now()); err != ErrPromoCodeInvalid {
		t.Fatalf("expected invalid code error, got %v", err)
	}
	if _, err := svc.Validate("NOPE99", time.Now()); err != ErrPromoCodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestValidateRejectsExpiredAndExhausted(t *testing.T) {
	db := newTestDB(t)
	expired := createTestPromo(t, db, "EXPIRED1", constants.PromoTypeFixed, "5.00", 0)
	expired.EndsAt = time.Now().Add(-time.Minute)
	if err := db.Save(expired).Error; err != nil {
		t.Fatalf("expire promo failed: %v", err)
	}
	drained := createTestPromo(t, db, "DRAINED1", constants.PromoTypeFixed, "5.00", 1)
	drained.UsedCount = 1
	if err := db.Save(drained).Error; err != nil {
		t.Fatalf("drain promo failed: %v", err)
	}

	svc := newPromoService(db)
	if _, err := svc.Validate("EXPIRED1", time.Now()); err != ErrPromoCodeExpired {
		t.Fatalf("expected expired error, got %v", err)
	}
	if _, err := svc.Validate("DRAINED1", time.Now()); err != ErrPromoCodeExhausted {
		t.Fatalf("expected exhausted error, got %v", err)
	}
}

func TestRedeemSaveTenScenario(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "50.00")
	createTestPromo(t, db, "SAVE10", constants.PromoTypeFixed, "15.00", 1)

	svc := newPromoService(db)
	now := time.Now()

	result, err := svc.Redeem(1, product.ID, "SAVE10", now)
	if err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}
	if result.DiscountAmount.String() != "15.00" {
		t.Fatalf("expected discount 15.00, got %s", result.DiscountAmount.String())
	}
	if result.FinalPrice.String() != "35.00" {
		t.Fatalf("expected final price 35.00, got %s", result.FinalPrice.String())
	}

	// 同一用户对同一商品重复兑换被拒
	if _, err := svc.Redeem(1, product.ID, "SAVE10", now); err != ErrPromoAlreadyUsed {
		t.Fatalf("expected already used error, got %v", err)
	}

	// 总上限为 1，另一个用户兑换时已耗尽
	if _, err := svc.Redeem(2, product.ID, "SAVE10", now); err != ErrPromoCodeExhausted {
		t.Fatalf("expected exhausted error, got %v", err)
	}

	var rows int64
	if err := db.Model(&models.PromoUsage{}).Count(&rows).Error; err != nil {
		t.Fatalf("count usages failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected exactly one ledger row, got %d", rows)
	}
}

func TestRedeemDifferentUserSucceedsWithoutLimit(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "50.00")
	createTestPromo(t, db, "SAVE10", constants.PromoTypeFixed, "15.00", 0)

	svc := newPromoService(db)
	now := time.Now()

	if _, err := svc.Redeem(1, product.ID, "SAVE10", now); err != nil {
		t.Fatalf("first user redemption failed: %v", err)
	}
	if _, err := svc.Redeem(2, product.ID, "SAVE10", now); err != nil {
		t.Fatalf("second user redemption failed: %v", err)
	}
}

func TestRedeemRespectsMinOrderAmount(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "10.00")
	promo := createTestPromo(t, db, "RICH100", constants.PromoTypePercentage, "10", 0)
	promo.MinOrderAmount = models.MustMoney("20.00")
	if err := db.Save(promo).Error; err != nil {
		t.Fatalf("update promo failed: %v", err)
	}

	svc := newPromoService(db)
	if _, err := svc.Redeem(1, product.ID, "RICH100", time.Now()); err != ErrPromoMinOrderAmount {
		t.Fatalf("expected min order error, got %v", err)
	}
}

func TestRedeemUsesDiscountedPriceAsBase(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "100.00")
	createTestDiscount(t, db, product.ID, constants.DiscountTypePercentage, "50", 1)
	createTestPromo(t, db, "HALF10", constants.PromoTypePercentage, "10", 0)

	svc := newPromoService(db)
	result, err := svc.Redeem(1, product.ID, "HALF10", time.Now())
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	// 折后价 50，促销码再减 10%
	if result.OrderAmount.String() != "50.00" {
		t.Fatalf("expected order amount 50.00, got %s", result.OrderAmount.String())
	}
	if result.DiscountAmount.String() != "5.00" {
		t.Fatalf("expected discount 5.00, got %s", result.DiscountAmount.String())
	}
}

func TestUpdateUsageCountIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "50.00")
	promo := createTestPromo(t, db, "SYNC0001", constants.PromoTypeFixed, "5.00", 0)

	svc := newPromoService(db)
	now := time.Now()
	if _, err := svc.Redeem(1, product.ID, "SYNC0001", now); err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if _, err := svc.Redeem(2, product.ID, "SYNC0001", now); err != nil {
		t.Fatalf("redeem failed: %v", err)
	}

	// 人为弄脏计数后对账两次，结果一致且等于台账行数
	if err := db.Model(&models.PromoCode{}).Where("id = ?", promo.ID).Update("used_count", 99).Error; err != nil {
		t.Fatalf("corrupt counter failed: %v", err)
	}
	first, err := svc.UpdateUsageCount(promo.ID)
	if err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	second, err := svc.UpdateUsageCount(promo.ID)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if first != 2 || second != 2 {
		t.Fatalf("expected reconciled count 2, got %d then %d", first, second)
	}
}

func TestSyncAllUsageCounts(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "50.00")
	createTestPromo(t, db, "SYNCA001", constants.PromoTypeFixed, "5.00", 0)
	createTestPromo(t, db, "SYNCB001", constants.PromoTypeFixed, "5.00", 0)

	svc := newPromoService(db)
	if _, err := svc.Redeem(1, product.ID, "SYNCA001", time.Now()); err != nil {
		t.Fatalf("redeem failed: %v", err)
	}

	synced, err := svc.SyncAllUsageCounts()
	if err != nil {
		t.Fatalf("sync all failed: %v", err)
	}
	if synced != 2 {
		t.Fatalf("expected 2 codes synced, got %d", synced)
	}
}

func TestStatsReportsTotalsAndRemaining(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "50.00")
	promo := createTestPromo(t, db, "STAT0001", constants.PromoTypeFixed, "5.00", 10)

	svc := newPromoService(db)
	now := time.Now()
	if _, err := svc.Redeem(1, product.ID, "STAT0001", now); err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if _, err := svc.Redeem(2, product.ID, "STAT0001", now); err != nil {
		t.Fatalf("redeem failed: %v", err)
	}

	stats, err := svc.Stats(promo.ID, 7, now)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalUses != 2 {
		t.Fatalf("expected 2 uses, got %d", stats.TotalUses)
	}
	if stats.RemainingUses != 8 {
		t.Fatalf("expected 8 remaining, got %d", stats.RemainingUses)
	}
	if stats.TotalDiscount.String() != "10.00" {
		t.Fatalf("expected total discount 10.00, got %s", stats.TotalDiscount.String())
	}
	if len(stats.DailyCounts) != 1 || stats.DailyCounts[0].Count != 2 {
		t.Fatalf("expected one day with 2 uses, got %+v", stats.DailyCounts)
	}
}
