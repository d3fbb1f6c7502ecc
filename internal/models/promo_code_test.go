package models

import (
	"testing"
	"time"

	"github.com/shop-next/internal/constants"
)

func activePromo(promoType, value string) *PromoCode {
	now := time.Now()
	return &PromoCode{
		ID:       1,
		Code:     "SAVE10",
		Type:     promoType,
		Value:    MustMoney(value),
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
		IsActive: true,
	}
}

func TestNormalizePromoCode(t *testing.T) {
	if got := NormalizePromoCode("  sa ve 10  "); got != "SAVE10" {
		t.Fatalf("expected SAVE10, got %q", got)
	}
}

func TestPromoCodeIsValidAtChecksLimit(t *testing.T) {
	p := activePromo(constants.PromoTypePercentage, "10")
	now := time.Now()

	if !p.IsValidAt(now) {
		t.Fatalf("expected promo to be valid")
	}

	p.UsageLimit = 2
	p.UsedCount = 2
	if p.IsValidAt(now) {
		t.Fatalf("exhausted promo should be invalid")
	}
	if p.CanBeUsed() {
		t.Fatalf("exhausted promo should not be usable")
	}

	p.UsedCount = 1
	if !p.CanBeUsed() {
		t.Fatalf("promo below limit should be usable")
	}
}

func TestPromoCanBeUsedIgnoresWindow(t *testing.T) {
	p := activePromo(constants.PromoTypeFixed, "5")
	p.EndsAt = time.Now().Add(-time.Minute)

	if p.IsValidAt(time.Now()) {
		t.Fatalf("expired promo should be invalid")
	}
	if !p.CanBeUsed() {
		t.Fatalf("CanBeUsed should ignore the time window")
	}
}

func TestPromoApplyDiscountMinOrderAmount(t *testing.T) {
	p := activePromo(constants.PromoTypePercentage, "20")
	p.MinOrderAmount = MustMoney("50.00")
	now := time.Now()

	if got := p.ApplyDiscount(MustMoney("40.00"), now); !got.IsZero() {
		t.Fatalf("below min order amount: expected 0, got %s", got.String())
	}
	if got := p.ApplyDiscount(MustMoney("100.00"), now); got.String() != "20.00" {
		t.Fatalf("expected 20.00, got %s", got.String())
	}
}

func TestPromoApplyDiscountFixedClampsToOrder(t *testing.T) {
	p := activePromo(constants.PromoTypeFixed, "15.00")
	now := time.Now()

	if got := p.ApplyDiscount(MustMoney("10.00"), now); got.String() != "10.00" {
		t.Fatalf("expected clamp to 10.00, got %s", got.String())
	}
	if got := p.ApplyDiscount(MustMoney("50.00"), now); got.String() != "15.00" {
		t.Fatalf("expected 15.00, got %s", got.String())
	}
}

func TestPromoApplyDiscountFreeShippingIsZero(t *testing.T) {
	p := activePromo(constants.PromoTypeFreeShipping, "0")
	now := time.Now()

	if got := p.ApplyDiscount(MustMoney("99.99"), now); !got.IsZero() {
		t.Fatalf("free shipping should not reduce price, got %s", got.String())
	}
}
