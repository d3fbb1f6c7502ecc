package models

import (
	"time"
)

// PromoUsage 促销码使用台账（追加写入，使用次数的唯一真相来源）
//
// (promo_code_id, user_id, product_id) 上的唯一索引保证同一用户对
// 同一商品最多兑换一次；product_id 为 0 表示不绑定具体商品，
// 用普通零值而非 NULL，使唯一索引对无商品兑换同样生效。
type PromoUsage struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                                  // 主键
	PromoCodeID    uint      `gorm:"not null;uniqueIndex:idx_promo_user_product" json:"promo_code_id"`     // 促销码ID
	UserID         uint      `gorm:"not null;uniqueIndex:idx_promo_user_product" json:"user_id"`           // 用户ID
	ProductID      uint      `gorm:"not null;default:0;uniqueIndex:idx_promo_user_product" json:"product_id"` // 商品ID（0 表示无）
	OrderAmount    Money     `gorm:"type:decimal(20,2);not null" json:"order_amount"`                      // 兑换时的订单金额
	DiscountAmount Money     `gorm:"type:decimal(20,2);not null" json:"discount_amount"`                   // 减免金额
	UsedAt         time.Time `gorm:"index;not null" json:"used_at"`                                        // 兑换时间

	PromoCode *PromoCode `gorm:"foreignKey:PromoCodeID" json:"promo_code,omitempty"` // 关联促销码
}

// TableName 指定表名
func (PromoUsage) TableName() string {
	return "promo_usages"
}
