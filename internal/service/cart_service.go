package service

import (
	"time"

	"github.com/shop-next/internal/logger"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/repository"
	"github.com/shop-next/internal/session"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ProductID  uint            `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  models.Money    `json:"unit_price"`  // 加入时的快照单价
	TotalPrice models.Money    `json:"total_price"` // 快照单价 × 数量
	Currency   string          `json:"currency"`
	Product    *models.Product `json:"product"`
}

// AddResult 加车结果
type AddResult struct {
	Entry    session.CartEntry `json:"entry"`
	Degraded bool              `json:"degraded"` // 价格解析失败时按原价兜底
}

// CartService 会话购物车服务，所有操作都作用在显式传入的会话状态上
type CartService struct {
	productRepo repository.ProductRepository
	pricing     *PricingService
}

// NewCartService 创建购物车服务
func NewCartService(productRepo repository.ProductRepository, pricing *PricingService) *CartService {
	return &CartService{
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// Add 加入购物车。override 为 true 时覆盖已有数量，否则累加；
// 每次调用都重新快照当前有效单价，使新应用的促销码立即生效。
// 价格解析失败不向上抛，降级为商品原价并在结果中标记。
func (s *CartService) Add(state *session.State, productID uint, quantity int, override bool, now time.Time) (*AddResult, error) {
	if state == nil {
		return nil, ErrQuantityInvalid
	}
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	finalQuantity := quantity
	if !override {
		if entry, ok := state.Items[session.ItemKey(productID)]; ok {
			finalQuantity += entry.Quantity
		}
	}

	unitPrice := product.PriceAmount
	degraded := false
	quote, err := s.pricing.QuoteProduct(product, finalQuantity, state, now)
	if err != nil {
		// 降级为原价，不让价格解析故障打断加车
		logger.Warnw("cart_pricing_degraded", "product_id", productID, "error", err)
		degraded = true
	} else {
		unitPrice = quote.FinalUnitPrice
	}

	state.SetItem(productID, finalQuantity, unitPrice)
	return &AddResult{
		Entry:    state.Items[session.ItemKey(productID)],
		Degraded: degraded,
	}, nil
}

// Remove 移出购物车，商品不在车内时为空操作
func (s *CartService) Remove(state *session.State, productID uint) {
	if state == nil {
		return
	}
	state.RemoveItem(productID)
}

// Clear 清空购物车
func (s *CartService) Clear(state *session.State) {
	if state == nil {
		return
	}
	state.Clear()
}

// Items 把会话条目与商品记录重新关联；已下架或删除的商品被剔除，
// 每项按快照单价重算小计。
func (s *CartService) Items(state *session.State) ([]CartItemDetail, error) {
	if state == nil || len(state.Items) == 0 {
		return []CartItemDetail{}, nil
	}

	ids := make([]uint, 0, len(state.Items))
	for _, entry := range state.Items {
		ids = append(ids, entry.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	details := make([]CartItemDetail, 0, len(state.Items))
	for _, entry := range state.Items {
		product, ok := byID[entry.ProductID]
		if !ok || !product.IsActive {
			state.RemoveItem(entry.ProductID)
			continue
		}
		total := models.NewMoneyFromDecimal(entry.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(entry.Quantity))))
		details = append(details, CartItemDetail{
			ProductID:  entry.ProductID,
			Quantity:   entry.Quantity,
			UnitPrice:  entry.UnitPrice,
			TotalPrice: total,
			Currency:   product.PriceCurrency,
			Product:    product,
		})
	}
	return details, nil
}

// TotalPrice 全部条目的快照单价乘数量之和，最后统一保留两位小数
func (s *CartService) TotalPrice(state *session.State) models.Money {
	if state == nil {
		return models.Money{}
	}
	total := decimal.Zero
	for _, entry := range state.Items {
		total = total.Add(entry.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	return models.NewMoneyFromDecimal(total)
}

// Len 购物车内商品总件数
func (s *CartService) Len(state *session.State) int {
	if state == nil {
		return 0
	}
	return state.Len()
}
