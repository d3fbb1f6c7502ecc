package session

import (
	"strconv"

	"github.com/shop-next/internal/models"
)

// CartEntry 购物车中的一项，单价为加入时快照
type CartEntry struct {
	ProductID uint         `json:"product_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unit_price"`
}

// AppliedPromo 已作用到某商品上的促销码快照
type AppliedPromo struct {
	PromoCodeID uint   `json:"promo_code_id"`
	Code        string `json:"code"`
}

// State 会话状态，包含购物车和促销码应用情况。
// 状态始终作为显式参数传递，修改后需调用 Store.Save 持久化。
type State struct {
	ID string `json:"id"`
	// Items 以商品ID字符串为键的购物车条目
	Items map[string]CartEntry `json:"items"`
	// ProductPromos 以商品ID字符串为键的已应用促销码
	ProductPromos map[string]AppliedPromo `json:"product_promos"`
	// AppliedPromoCode 当前会话级生效的促销码，空串表示无
	AppliedPromoCode string `json:"applied_promo_code"`
}

// NewState 创建空会话状态
func NewState(id string) *State {
	return &State{
		ID:            id,
		Items:         make(map[string]CartEntry),
		ProductPromos: make(map[string]AppliedPromo),
	}
}

// normalize 兜底初始化反序列化后可能为 nil 的映射
func (s *State) normalize() {
	if s.Items == nil {
		s.Items = make(map[string]CartEntry)
	}
	if s.ProductPromos == nil {
		s.ProductPromos = make(map[string]AppliedPromo)
	}
}

// ItemKey 商品ID到购物车键的转换
func ItemKey(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

// SetItem 写入购物车条目，覆盖同商品的已有数量和单价快照
func (s *State) SetItem(productID uint, quantity int, unitPrice models.Money) {
	s.normalize()
	s.Items[ItemKey(productID)] = CartEntry{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}
}

// AddItem 在已有数量上累加，单价快照以最新为准
func (s *State) AddItem(productID uint, quantity int, unitPrice models.Money) {
	s.normalize()
	key := ItemKey(productID)
	entry, ok := s.Items[key]
	if !ok {
		entry = CartEntry{ProductID: productID}
	}
	entry.Quantity += quantity
	entry.UnitPrice = unitPrice
	s.Items[key] = entry
}

// RemoveItem 移除购物车条目及其关联的促销码
func (s *State) RemoveItem(productID uint) {
	s.normalize()
	key := ItemKey(productID)
	delete(s.Items, key)
	delete(s.ProductPromos, key)
}

// Clear 清空购物车和全部促销码应用
func (s *State) Clear() {
	s.Items = make(map[string]CartEntry)
	s.ProductPromos = make(map[string]AppliedPromo)
	s.AppliedPromoCode = ""
}

// SetProductPromo 记录某商品上应用的促销码
func (s *State) SetProductPromo(productID uint, promo AppliedPromo) {
	s.normalize()
	s.ProductPromos[ItemKey(productID)] = promo
}

// ProductPromo 查询某商品上应用的促销码
func (s *State) ProductPromo(productID uint) (AppliedPromo, bool) {
	s.normalize()
	promo, ok := s.ProductPromos[ItemKey(productID)]
	return promo, ok
}

// RemovePromo 撤销促销码应用，会话级与商品级一并清除
func (s *State) RemovePromo(code string) {
	s.normalize()
	if s.AppliedPromoCode == code {
		s.AppliedPromoCode = ""
	}
	for key, promo := range s.ProductPromos {
		if promo.Code == code {
			delete(s.ProductPromos, key)
		}
	}
}

// Len 购物车内商品总件数
func (s *State) Len() int {
	total := 0
	for _, entry := range s.Items {
		total += entry.Quantity
	}
	return total
}
