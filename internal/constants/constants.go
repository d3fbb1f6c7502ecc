package constants

// 商品折扣类型常量
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// 促销码类型常量
const (
	PromoTypePercentage   = "percentage"
	PromoTypeFixed        = "fixed"
	PromoTypeFreeShipping = "free_shipping"
)

// 促销码最短长度（规范化后）
const PromoCodeMinLength = 4

// 队列名称常量
const (
	QueueDefault = "default"
)

// 队列任务类型常量
const (
	TaskPromoUsageSync = "promo:usage_sync"
)
