package service

import "errors"

// 服务层统一错误定义，处理器负责映射到对外状态码
var (
	ErrNotFound           = errors.New("资源不存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("密码错误")
	ErrEmailTaken         = errors.New("邮箱已被注册")

	ErrProductNotFound  = errors.New("商品不存在")
	ErrCategoryNotFound = errors.New("分类不存在")
	ErrQuantityInvalid  = errors.New("数量不合法")

	ErrDiscountNotFound = errors.New("折扣不存在")
	ErrDiscountInvalid  = errors.New("折扣参数不合法")

	ErrPromoCodeNotFound   = errors.New("促销码不存在")
	ErrPromoCodeInvalid    = errors.New("促销码不合法")
	ErrPromoCodeExists     = errors.New("促销码已存在")
	ErrPromoCodeExpired    = errors.New("促销码不在有效期内")
	ErrPromoCodeExhausted  = errors.New("促销码使用次数已达上限")
	ErrPromoAlreadyUsed    = errors.New("促销码已使用过")
	ErrPromoMinOrderAmount = errors.New("订单金额未达到促销码使用门槛")
	ErrPromoCodeInUse      = errors.New("促销码存在使用记录，禁止删除")
)
