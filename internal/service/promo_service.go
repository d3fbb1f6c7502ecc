package service

import (
	"time"

	"github.com/shop-next/internal/constants"
	"github.com/shop-next/internal/logger"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/repository"

	"gorm.io/gorm"
)

// PromoService 促销码服务，负责校验、兑换和使用数对账
type PromoService struct {
	promoRepo   repository.PromoCodeRepository
	usageRepo   repository.PromoUsageRepository
	productRepo repository.ProductRepository
	pricing     *PricingService
}

// NewPromoService 创建促销码服务
func NewPromoService(promoRepo repository.PromoCodeRepository, usageRepo repository.PromoUsageRepository, productRepo repository.ProductRepository, pricing *PricingService) *PromoService {
	return &PromoService{
		promoRepo:   promoRepo,
		usageRepo:   usageRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// Validate 规范化并校验促销码，返回可用的促销码记录
func (s *PromoService) Validate(code string, now time.Time) (*models.PromoCode, error) {
	normalized := models.NormalizePromoCode(code)
	if len(normalized) < constants.PromoCodeMinLength {
		return nil, ErrPromoCodeInvalid
	}

	promo, err := s.promoRepo.GetByCode(normalized)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoCodeNotFound
	}
	if !promo.IsActive || now.Before(promo.StartsAt) || now.After(promo.EndsAt) {
		return promo, ErrPromoCodeExpired
	}
	if !promo.CanBeUsed() {
		return promo, ErrPromoCodeExhausted
	}
	return promo, nil
}

// RedeemResult 兑换成功的结果
type RedeemResult struct {
	Promo          *models.PromoCode `json:"promo_code"`
	OrderAmount    models.Money      `json:"order_amount"`    // 兑换时的折后单价
	DiscountAmount models.Money      `json:"discount_amount"` // 本次减免金额
	FinalPrice     models.Money      `json:"final_price"`     // 减免后价格
	FreeShipping   bool              `json:"free_shipping"`
}

// Redeem 把促销码兑换到指定商品上。
// 台账写入和上限检查放在同一个事务里，(码, 用户, 商品) 唯一索引
// 兜底并发下的重复兑换：并发请求只有一个成功，失败方拿到已使用错误。
func (s *PromoService) Redeem(userID, productID uint, code string, now time.Time) (*RedeemResult, error) {
	promo, err := s.Validate(code, now)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	used, err := s.usageRepo.ExistsByTriple(promo.ID, userID, productID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, ErrPromoAlreadyUsed
	}

	orderAmount, err := s.pricing.DiscountedUnitPrice(product, now)
	if err != nil {
		return nil, err
	}
	if orderAmount.Decimal.LessThan(promo.MinOrderAmount.Decimal) {
		return nil, ErrPromoMinOrderAmount
	}

	discountAmount := promo.ApplyDiscount(orderAmount, now)
	finalPrice := models.NewMoneyFromDecimal(orderAmount.Decimal.Sub(discountAmount.Decimal))

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		promoRepo := s.promoRepo.WithTx(tx)
		usageRepo := s.usageRepo.WithTx(tx)

		if promo.UsageLimit > 0 {
			count, err := usageRepo.CountByCode(promo.ID)
			if err != nil {
				return err
			}
			if int(count) >= promo.UsageLimit {
				return ErrPromoCodeExhausted
			}
		}

		usage := &models.PromoUsage{
			PromoCodeID:    promo.ID,
			UserID:         userID,
			ProductID:      productID,
			OrderAmount:    orderAmount,
			DiscountAmount: discountAmount,
			UsedAt:         now,
		}
		if err := usageRepo.Create(usage); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrPromoAlreadyUsed
			}
			return err
		}
		return promoRepo.IncrementUsedCount(promo.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("promo_redeemed",
		"code", promo.Code,
		"user_id", userID,
		"product_id", productID,
		"discount_amount", discountAmount.String(),
	)

	promo.UsedCount++
	return &RedeemResult{
		Promo:          promo,
		OrderAmount:    orderAmount,
		DiscountAmount: discountAmount,
		FinalPrice:     finalPrice,
		FreeShipping:   promo.Type == constants.PromoTypeFreeShipping,
	}, nil
}

// IncrementUsage 尽力而为地把使用计数加一，计数本身只是缓存
func (s *PromoService) IncrementUsage(promoCodeID uint) error {
	return s.promoRepo.IncrementUsedCount(promoCodeID)
}

// UpdateUsageCount 按台账行数重算使用计数，可重复执行
func (s *PromoService) UpdateUsageCount(promoCodeID uint) (int, error) {
	count, err := s.usageRepo.CountByCode(promoCodeID)
	if err != nil {
		return 0, err
	}
	if err := s.promoRepo.SetUsedCount(promoCodeID, int(count)); err != nil {
		return 0, err
	}
	return int(count), nil
}

// SyncAllUsageCounts 对账全部促销码的使用计数，返回处理数量
func (s *PromoService) SyncAllUsageCounts() (int, error) {
	ids, err := s.promoRepo.ListIDs()
	if err != nil {
		return 0, err
	}
	synced := 0
	for _, id := range ids {
		if _, err := s.UpdateUsageCount(id); err != nil {
			logger.Warnw("promo_usage_sync_failed", "promo_code_id", id, "error", err)
			continue
		}
		synced++
	}
	return synced, nil
}

// UsageStats 促销码使用统计
type UsageStats struct {
	PromoCodeID   uint                              `json:"promo_code_id"`
	Code          string                            `json:"code"`
	TotalUses     int64                             `json:"total_uses"`
	UsageLimit    int                               `json:"usage_limit"`
	RemainingUses int                               `json:"remaining_uses"` // -1 表示不限量
	TotalDiscount models.Money                      `json:"total_discount"`
	DailyCounts   []repository.PromoUsageDailyCount `json:"daily_counts"`
}

// Stats 统计某促销码最近 days 天的使用情况
func (s *PromoService) Stats(promoCodeID uint, days int, now time.Time) (*UsageStats, error) {
	promo, err := s.promoRepo.GetByID(promoCodeID)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoCodeNotFound
	}

	total, err := s.usageRepo.CountByCode(promo.ID)
	if err != nil {
		return nil, err
	}
	totalDiscount, err := s.usageRepo.SumDiscountByCode(promo.ID)
	if err != nil {
		return nil, err
	}

	if days <= 0 {
		days = 30
	}
	daily, err := s.usageRepo.DailyCounts(promo.ID, now.AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	remaining := -1
	if promo.UsageLimit > 0 {
		remaining = promo.UsageLimit - int(total)
		if remaining < 0 {
			remaining = 0
		}
	}

	return &UsageStats{
		PromoCodeID:   promo.ID,
		Code:          promo.Code,
		TotalUses:     total,
		UsageLimit:    promo.UsageLimit,
		RemainingUses: remaining,
		TotalDiscount: totalDiscount,
		DailyCounts:   daily,
	}, nil
}

// Usages 分页查看某促销码的兑换流水
func (s *PromoService) Usages(promoCodeID uint, page, limit int) ([]models.PromoUsage, int64, error) {
	promo, err := s.promoRepo.GetByID(promoCodeID)
	if err != nil {
		return nil, 0, err
	}
	if promo == nil {
		return nil, 0, ErrPromoCodeNotFound
	}
	return s.usageRepo.ListByCode(promoCodeID, page, limit)
}
