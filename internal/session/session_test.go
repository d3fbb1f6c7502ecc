package session

import (
	"context"
	"testing"
	"time"

	"github.com/shop-next/internal/models"
)

func TestStateAddAndSetItem(t *testing.T) {
	state := NewState(NewSessionID())
	price := models.MustMoney("20.00")

	state.AddItem(1, 3, price)
	state.AddItem(1, 2, price)
	if got := state.Items[ItemKey(1)].Quantity; got != 5 {
		t.Fatalf("expected accumulated quantity 5, got %d", got)
	}

	state.SetItem(1, 2, price)
	if got := state.Items[ItemKey(1)].Quantity; got != 2 {
		t.Fatalf("expected overridden quantity 2, got %d", got)
	}
	if got := state.Items[ItemKey(1)].UnitPrice.String(); got != "20.00" {
		t.Fatalf("expected snapshotted unit price 20.00, got %s", got)
	}

	if state.Len() != 2 {
		t.Fatalf("expected total 2 items, got %d", state.Len())
	}
}

func TestStateRemoveItemDropsPromo(t *testing.T) {
	state := NewState(NewSessionID())
	state.SetItem(4, 1, models.MustMoney("5.00"))
	state.SetProductPromo(4, AppliedPromo{PromoCodeID: 2, Code: "SAVE10"})

	state.RemoveItem(4)
	if _, ok := state.Items[ItemKey(4)]; ok {
		t.Fatal("expected cart entry removed")
	}
	if _, ok := state.ProductPromo(4); ok {
		t.Fatal("expected product promo removed with the item")
	}
}

func TestStateRemovePromo(t *testing.T) {
	state := NewState(NewSessionID())
	state.AppliedPromoCode = "SAVE10"
	state.SetProductPromo(1, AppliedPromo{PromoCodeID: 2, Code: "SAVE10"})
	state.SetProductPromo(2, AppliedPromo{PromoCodeID: 3, Code: "OTHER"})

	state.RemovePromo("SAVE10")
	if state.AppliedPromoCode != "" {
		t.Fatalf("expected session promo cleared, got %q", state.AppliedPromoCode)
	}
	if _, ok := state.ProductPromo(1); ok {
		t.Fatal("expected product promo for SAVE10 cleared")
	}
	if _, ok := state.ProductPromo(2); !ok {
		t.Fatal("expected unrelated product promo kept")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := NewState("sess-1")
	state.SetItem(1, 2, models.MustMoney("10.00"))
	state.AppliedPromoCode = "SAVE10"
	if err := store.Save(ctx, state, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	// 保存后修改原对象不应影响已存储状态
	state.SetItem(1, 99, models.MustMoney("10.00"))

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected stored session")
	}
	if got := loaded.Items[ItemKey(1)].Quantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
	if loaded.AppliedPromoCode != "SAVE10" {
		t.Fatalf("expected promo code kept, got %q", loaded.AppliedPromoCode)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := NewState("sess-2")
	state.SetItem(1, 1, models.MustMoney("1.00"))
	if err := store.Save(ctx, state, time.Millisecond); err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	loaded, err := store.Load(ctx, "sess-2")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected expired session to be gone")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := NewState("sess-3")
	if err := store.Save(ctx, state, 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "sess-3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	loaded, err := store.Load(ctx, "sess-3")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected deleted session to be gone")
	}
}
