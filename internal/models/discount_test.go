package models

import (
	"testing"
	"time"

	"github.com/shop-next/internal/constants"
)

func activeDiscount(discountType, value string, minQuantity int) *Discount {
	now := time.Now()
	return &Discount{
		ID:          1,
		ProductID:   1,
		Type:        discountType,
		Value:       MustMoney(value),
		StartsAt:    now.Add(-time.Hour),
		EndsAt:      now.Add(time.Hour),
		IsActive:    true,
		MinQuantity: minQuantity,
	}
}

func TestDiscountIsValidAt(t *testing.T) {
	d := activeDiscount(constants.DiscountTypePercentage, "10", 1)
	now := time.Now()

	if !d.IsValidAt(now) {
		t.Fatalf("expected discount to be valid")
	}
	if d.IsValidAt(d.StartsAt.Add(-time.Minute)) {
		t.Fatalf("discount before window should be invalid")
	}
	if d.IsValidAt(d.EndsAt.Add(time.Minute)) {
		t.Fatalf("discount after window should be invalid")
	}

	d.IsActive = false
	if d.IsValidAt(now) {
		t.Fatalf("inactive discount should be invalid")
	}
}

func TestDiscountCalculateRespectsMinQuantity(t *testing.T) {
	d := activeDiscount(constants.DiscountTypePercentage, "10", 2)
	now := time.Now()
	price := MustMoney("100.00")

	if got := d.CalculateDiscount(price, 1, now); !got.IsZero() {
		t.Fatalf("below min quantity: expected 0, got %s", got.String())
	}
	if got := d.CalculateDiscount(price, 3, now); got.String() != "30.00" {
		t.Fatalf("expected 30.00, got %s", got.String())
	}
}

func TestDiscountCalculateFixed(t *testing.T) {
	d := activeDiscount(constants.DiscountTypeFixed, "5.50", 1)
	now := time.Now()

	if got := d.CalculateDiscount(MustMoney("20.00"), 4, now); got.String() != "22.00" {
		t.Fatalf("expected 22.00, got %s", got.String())
	}
}

func TestDiscountedPriceNeverNegative(t *testing.T) {
	d := activeDiscount(constants.DiscountTypeFixed, "50.00", 1)
	now := time.Now()

	got := d.DiscountedPrice(MustMoney("10.00"), 2, now)
	if got.String() != "0.00" {
		t.Fatalf("expected clamped 0.00, got %s", got.String())
	}
}

func TestDiscountedPriceMatchesCalculate(t *testing.T) {
	d := activeDiscount(constants.DiscountTypePercentage, "25", 2)
	now := time.Now()
	price := MustMoney("19.99")
	quantity := 3

	total := MustMoney("59.97")
	amount := d.CalculateDiscount(price, quantity, now)
	want := NewMoneyFromDecimal(total.Decimal.Sub(amount.Decimal))

	if got := d.DiscountedPrice(price, quantity, now); got.String() != want.String() {
		t.Fatalf("expected %s, got %s", want.String(), got.String())
	}
}
