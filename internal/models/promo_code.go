package models

import (
	"strings"
	"time"

	"github.com/shop-next/internal/constants"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PromoCode 促销码（全局、限量、限时）
type PromoCode struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`                              // 促销码（规范化大写，创建后不可改）
	Type           string         `gorm:"not null" json:"type"`                                          // 类型（percentage/fixed/free_shipping）
	Value          Money          `gorm:"type:decimal(20,2);not null" json:"value"`                      // 数值（free_shipping 固定为 0）
	StartsAt       time.Time      `gorm:"index;not null" json:"starts_at"`                               // 生效时间
	EndsAt         time.Time      `gorm:"index;not null" json:"ends_at"`                                 // 失效时间
	UsageLimit     int            `gorm:"not null;default:0" json:"usage_limit"`                         // 总使用上限（0 表示不限制）
	UsedCount      int            `gorm:"not null;default:0" json:"used_count"`                          // 已使用次数（缓存，台账可重算）
	MinOrderAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"` // 使用门槛
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`                        // 是否启用
	CreatedByID    *uint          `gorm:"index" json:"created_by_id"`                                    // 创建人（弱引用管理员）
	Description    string         `gorm:"type:text" json:"description"`                                  // 描述
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (PromoCode) TableName() string {
	return "promo_codes"
}

// NormalizePromoCode 规范化促销码：大写并去掉所有空格
func NormalizePromoCode(code string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(code)), " ", "")
}

// IsValidAt 判断促销码在指定时刻是否可用（含使用上限检查）
func (p *PromoCode) IsValidAt(now time.Time) bool {
	if p == nil || !p.IsActive {
		return false
	}
	if now.Before(p.StartsAt) || now.After(p.EndsAt) {
		return false
	}
	return p.CanBeUsed()
}

// CanBeUsed 仅检查使用上限，不看时间窗口
func (p *PromoCode) CanBeUsed() bool {
	if p == nil {
		return false
	}
	if p.UsageLimit <= 0 {
		return true
	}
	return p.UsedCount < p.UsageLimit
}

// ApplyDiscount 计算对订单金额的减免；失效或低于门槛时返回 0
func (p *PromoCode) ApplyDiscount(orderAmount Money, now time.Time) Money {
	if p == nil || !p.IsValidAt(now) {
		return Money{}
	}
	if orderAmount.Decimal.LessThan(p.MinOrderAmount.Decimal) {
		return Money{}
	}
	switch p.Type {
	case constants.PromoTypePercentage:
		amount := orderAmount.Decimal.Mul(p.Value.Decimal).Div(decimal.NewFromInt(100))
		return NewMoneyFromDecimal(amount)
	case constants.PromoTypeFixed:
		if p.Value.Decimal.GreaterThan(orderAmount.Decimal) {
			return NewMoneyFromDecimal(orderAmount.Decimal)
		}
		return NewMoneyFromDecimal(p.Value.Decimal)
	case constants.PromoTypeFreeShipping:
		// 免运费不减商品价格，只作标记
		return Money{}
	}
	return Money{}
}
