package service

import (
	"testing"
	"time"

	"github.com/shop-next/internal/constants"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/repository"

	"gorm.io/gorm"
)

func newDiscountAdminService(db *gorm.DB) *DiscountAdminService {
	return NewDiscountAdminService(
		repository.NewDiscountRepository(db),
		repository.NewProductRepository(db),
	)
}

func validDiscountInput(productID uint) CreateDiscountInput {
	now := time.Now()
	return CreateDiscountInput{
		ProductID:   productID,
		Type:        constants.DiscountTypePercentage,
		Value:       models.MustMoney("10"),
		StartsAt:    now.Add(-time.Hour),
		EndsAt:      now.Add(time.Hour),
		MinQuantity: 1,
	}
}

func TestDiscountAdminCreate(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "100.00")
	svc := newDiscountAdminService(db)

	discount, err := svc.Create(validDiscountInput(product.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if discount.MinQuantity != 1 || !discount.IsActive {
		t.Fatalf("unexpected defaults: %+v", discount)
	}
}

func TestDiscountAdminCreateRejectsFixedAbovePrice(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "30.00")
	svc := newDiscountAdminService(db)

	input := validDiscountInput(product.ID)
	input.Type = constants.DiscountTypeFixed
	input.Value = models.MustMoney("31.00")
	if _, err := svc.Create(input); err != ErrDiscountInvalid {
		t.Fatalf("expected invalid error for fixed above price, got %v", err)
	}

	input.Value = models.MustMoney("30.00")
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("fixed equal to price should pass: %v", err)
	}
}

func TestDiscountAdminCreateValidation(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "100.00")
	svc := newDiscountAdminService(db)
	now := time.Now()

	input := validDiscountInput(product.ID)
	input.Value = models.MustMoney("150")
	if _, err := svc.Create(input); err != ErrDiscountInvalid {
		t.Fatalf("expected invalid error for percentage over 100, got %v", err)
	}

	input = validDiscountInput(product.ID)
	input.StartsAt = now.Add(time.Hour)
	input.EndsAt = now.Add(-time.Hour)
	if _, err := svc.Create(input); err != ErrDiscountInvalid {
		t.Fatalf("expected invalid error for reversed window, got %v", err)
	}

	if _, err := svc.Create(validDiscountInput(999)); err != ErrProductNotFound {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestDiscountAdminMinQuantityDefaultsToOne(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "100.00")
	svc := newDiscountAdminService(db)

	input := validDiscountInput(product.ID)
	input.MinQuantity = 0
	discount, err := svc.Create(input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if discount.MinQuantity != 1 {
		t.Fatalf("expected min quantity 1, got %d", discount.MinQuantity)
	}
}

func TestDiscountAdminUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "100.00")
	svc := newDiscountAdminService(db)

	discount, err := svc.Create(validDiscountInput(product.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	now := time.Now()
	updated, err := svc.Update(discount.ID, UpdateDiscountInput{
		Type:        constants.DiscountTypeFixed,
		Value:       models.MustMoney("20.00"),
		StartsAt:    now.Add(-time.Hour),
		EndsAt:      now.Add(2 * time.Hour),
		MinQuantity: 3,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Type != constants.DiscountTypeFixed || updated.MinQuantity != 3 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.ProductID != product.ID {
		t.Fatalf("product binding must not change, got %d", updated.ProductID)
	}

	if err := svc.Delete(discount.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(discount.ID); err != ErrDiscountNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDiscountAdminBulkActivate(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "100.00")
	svc := newDiscountAdminService(db)

	first, err := svc.Create(validDiscountInput(product.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := svc.Create(validDiscountInput(product.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ids := []uint{first.ID, second.ID}
	affected, err := svc.Deactivate(ids)
	if err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 rows affected, got %d", affected)
	}
	for _, id := range ids {
		discount, err := svc.Get(id)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if discount.IsActive {
			t.Fatalf("expected discount %d inactive", id)
		}
	}
}
