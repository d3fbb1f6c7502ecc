package models

import (
	"time"

	"github.com/shop-next/internal/constants"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount 商品折扣（限时、限最低数量，单商品独占）
type Discount struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                // 主键
	ProductID   uint           `gorm:"index;not null" json:"product_id"`                    // 所属商品ID
	Type        string         `gorm:"not null" json:"type"`                                // 类型（percentage/fixed）
	Value       Money          `gorm:"type:decimal(20,2);not null" json:"value"`            // 数值（百分比或固定金额）
	StartsAt    time.Time      `gorm:"index;not null" json:"starts_at"`                     // 生效时间
	EndsAt      time.Time      `gorm:"index;not null" json:"ends_at"`                       // 失效时间
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`              // 是否启用
	MinQuantity int            `gorm:"not null;default:1" json:"min_quantity"`              // 最低购买数量
	Description string         `gorm:"type:text" json:"description"`                        // 描述
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 所属商品
}

// TableName 指定表名
func (Discount) TableName() string {
	return "discounts"
}

// IsValidAt 判断折扣在指定时刻是否生效
func (d *Discount) IsValidAt(now time.Time) bool {
	if d == nil || !d.IsActive {
		return false
	}
	return !now.Before(d.StartsAt) && !now.After(d.EndsAt)
}

// CalculateDiscount 计算减免金额；折扣失效或数量不足时返回 0
func (d *Discount) CalculateDiscount(price Money, quantity int, now time.Time) Money {
	if d == nil || !d.IsValidAt(now) {
		return Money{}
	}
	if d.MinQuantity > 0 && quantity < d.MinQuantity {
		return Money{}
	}
	qty := decimal.NewFromInt(int64(quantity))
	switch d.Type {
	case constants.DiscountTypePercentage:
		amount := price.Decimal.Mul(qty).Mul(d.Value.Decimal).Div(decimal.NewFromInt(100))
		return NewMoneyFromDecimal(amount)
	case constants.DiscountTypeFixed:
		return NewMoneyFromDecimal(d.Value.Decimal.Mul(qty))
	}
	return Money{}
}

// DiscountedPrice 计算折后总价，下限为 0
func (d *Discount) DiscountedPrice(price Money, quantity int, now time.Time) Money {
	total := price.Decimal.Mul(decimal.NewFromInt(int64(quantity)))
	discounted := total.Sub(d.CalculateDiscount(price, quantity, now).Decimal)
	if discounted.LessThan(decimal.Zero) {
		discounted = decimal.Zero
	}
	return NewMoneyFromDecimal(discounted)
}
