package service

import (
	"time"

	"github.com/shop-next/internal/constants"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/repository"
	"github.com/shop-next/internal/session"

	"github.com/shopspring/decimal"
)

// Outcome 价格规则的计算结果；Applied 为 false 表示规则未生效
type Outcome struct {
	Applied bool
	Amount  models.Money
}

// NoDiscount 未触发任何减免
func NoDiscount() Outcome {
	return Outcome{}
}

// AppliedAmount 触发减免并给出金额
func AppliedAmount(amount models.Money) Outcome {
	if amount.Decimal.LessThanOrEqual(decimal.Zero) {
		return Outcome{}
	}
	return Outcome{Applied: true, Amount: amount}
}

// PriceRule 价格规则统一接口，折扣和促销码都实现它
type PriceRule interface {
	// Evaluate 基于单价和数量给出减免结果
	Evaluate(unitPrice models.Money, quantity int, now time.Time) Outcome
}

// DiscountRule 商品折扣规则
type DiscountRule struct {
	Discount *models.Discount
}

// Evaluate 按折扣定义计算减免
func (r DiscountRule) Evaluate(unitPrice models.Money, quantity int, now time.Time) Outcome {
	if r.Discount == nil {
		return NoDiscount()
	}
	return AppliedAmount(r.Discount.CalculateDiscount(unitPrice, quantity, now))
}

// PromoRule 促销码规则，作用在折后总价上
type PromoRule struct {
	Promo *models.PromoCode
}

// Evaluate 按促销码定义计算减免
func (r PromoRule) Evaluate(unitPrice models.Money, quantity int, now time.Time) Outcome {
	if r.Promo == nil {
		return NoDiscount()
	}
	total := models.NewMoneyFromDecimal(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
	return AppliedAmount(r.Promo.ApplyDiscount(total, now))
}

// Quote 价格解析结果
type Quote struct {
	ProductID      uint              `json:"product_id"`
	Quantity       int               `json:"quantity"`
	UnitPrice      models.Money      `json:"unit_price"`      // 商品原始单价
	OriginalTotal  models.Money      `json:"original_total"`  // 原始总价
	Discount       *models.Discount  `json:"discount,omitempty"`
	DiscountAmount models.Money      `json:"discount_amount"` // 折扣减免
	PromoCode      *models.PromoCode `json:"promo_code,omitempty"`
	PromoAmount    models.Money      `json:"promo_amount"`  // 促销码减免
	FreeShipping   bool              `json:"free_shipping"` // 促销码是否带免运费
	FinalTotal     models.Money      `json:"final_total"`   // 最终应付总价
	FinalUnitPrice models.Money      `json:"final_unit_price"`
}

// PricingService 价格解析服务
type PricingService struct {
	productRepo  repository.ProductRepository
	discountRepo repository.DiscountRepository
	promoRepo    repository.PromoCodeRepository
}

// NewPricingService 创建价格解析服务
func NewPricingService(productRepo repository.ProductRepository, discountRepo repository.DiscountRepository, promoRepo repository.PromoCodeRepository) *PricingService {
	return &PricingService{
		productRepo:  productRepo,
		discountRepo: discountRepo,
		promoRepo:    promoRepo,
	}
}

// BestDiscount 在商品挂载的折扣中选出减免最大的一条。
// 按ID升序遍历并只在严格更优时替换，金额并列时低ID稳定胜出；
// 没有任何折扣给出正减免时返回 (nil, 0)。
func (s *PricingService) BestDiscount(productID uint, unitPrice models.Money, quantity int, now time.Time) (*models.Discount, models.Money, error) {
	discounts, err := s.discountRepo.ListByProductID(productID)
	if err != nil {
		return nil, models.Money{}, err
	}
	return pickBestDiscount(discounts, unitPrice, quantity, now)
}

func pickBestDiscount(discounts []models.Discount, unitPrice models.Money, quantity int, now time.Time) (*models.Discount, models.Money, error) {
	var best *models.Discount
	bestAmount := models.Money{}
	for i := range discounts {
		outcome := DiscountRule{Discount: &discounts[i]}.Evaluate(unitPrice, quantity, now)
		if !outcome.Applied {
			continue
		}
		if best == nil || outcome.Amount.Decimal.GreaterThan(bestAmount.Decimal) {
			best = &discounts[i]
			bestAmount = outcome.Amount
		}
	}
	return best, bestAmount, nil
}

// QuoteProduct 解析商品在给定数量与会话促销状态下的应付价格。
// 促销码只对记录在会话里且仍然有效的码生效，失效的码被静默忽略。
func (s *PricingService) QuoteProduct(product *models.Product, quantity int, state *session.State, now time.Time) (*Quote, error) {
	if product == nil {
		return nil, ErrProductNotFound
	}
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	unitPrice := product.PriceAmount
	originalTotal := models.NewMoneyFromDecimal(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))))

	quote := &Quote{
		ProductID:     product.ID,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		OriginalTotal: originalTotal,
		FinalTotal:    originalTotal,
	}

	discount, discountAmount, err := s.BestDiscount(product.ID, unitPrice, quantity, now)
	if err != nil {
		return nil, err
	}
	if discount != nil {
		quote.Discount = discount
		quote.DiscountAmount = discountAmount
		reduced := originalTotal.Decimal.Sub(discountAmount.Decimal)
		if reduced.LessThan(decimal.Zero) {
			reduced = decimal.Zero
		}
		quote.FinalTotal = models.NewMoneyFromDecimal(reduced)
	}

	if state != nil {
		if applied, ok := state.ProductPromo(product.ID); ok {
			promo, err := s.promoRepo.GetByID(applied.PromoCodeID)
			if err != nil {
				return nil, err
			}
			if promo != nil && promo.IsValidAt(now) {
				promoAmount := promo.ApplyDiscount(quote.FinalTotal, now)
				quote.PromoCode = promo
				quote.PromoAmount = promoAmount
				quote.FreeShipping = promo.Type == constants.PromoTypeFreeShipping
				reduced := quote.FinalTotal.Decimal.Sub(promoAmount.Decimal)
				if reduced.LessThan(decimal.Zero) {
					reduced = decimal.Zero
				}
				quote.FinalTotal = models.NewMoneyFromDecimal(reduced)
			}
		}
	}

	if quote.FinalTotal.Decimal.GreaterThan(originalTotal.Decimal) {
		quote.FinalTotal = originalTotal
	}
	quote.FinalUnitPrice = models.NewMoneyFromDecimal(quote.FinalTotal.Decimal.Div(decimal.NewFromInt(int64(quantity))))
	return quote, nil
}

// QuoteProductByID 按商品ID解析价格
func (s *PricingService) QuoteProductByID(productID uint, quantity int, state *session.State, now time.Time) (*Quote, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.QuoteProduct(product, quantity, state, now)
}

// DiscountedUnitPrice 商品单件折后价，促销码兑换时的门槛基准
func (s *PricingService) DiscountedUnitPrice(product *models.Product, now time.Time) (models.Money, error) {
	if product == nil {
		return models.Money{}, ErrProductNotFound
	}
	discount, amount, err := s.BestDiscount(product.ID, product.PriceAmount, 1, now)
	if err != nil {
		return models.Money{}, err
	}
	if discount == nil {
		return product.PriceAmount, nil
	}
	reduced := product.PriceAmount.Decimal.Sub(amount.Decimal)
	if reduced.LessThan(decimal.Zero) {
		reduced = decimal.Zero
	}
	return models.NewMoneyFromDecimal(reduced), nil
}
