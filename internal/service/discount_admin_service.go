package service

import (
	"time"

	"github.com/shop-next/internal/constants"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountAdminService 商品折扣管理服务
type DiscountAdminService struct {
	discountRepo repository.DiscountRepository
	productRepo  repository.ProductRepository
}

// NewDiscountAdminService 创建折扣管理服务
func NewDiscountAdminService(discountRepo repository.DiscountRepository, productRepo repository.ProductRepository) *DiscountAdminService {
	return &DiscountAdminService{
		discountRepo: discountRepo,
		productRepo:  productRepo,
	}
}

// CreateDiscountInput 创建折扣输入
type CreateDiscountInput struct {
	ProductID   uint
	Type        string
	Value       models.Money
	StartsAt    time.Time
	EndsAt      time.Time
	MinQuantity int
	IsActive    *bool
	Description string
}

// UpdateDiscountInput 更新折扣输入
type UpdateDiscountInput struct {
	Type        string
	Value       models.Money
	StartsAt    time.Time
	EndsAt      time.Time
	MinQuantity int
	IsActive    *bool
	Description string
}

func validateDiscountValue(discountType string, value models.Money, productPrice *models.Money) error {
	switch discountType {
	case constants.DiscountTypePercentage:
		if value.Decimal.LessThan(decimal.Zero) || value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return ErrDiscountInvalid
		}
	case constants.DiscountTypeFixed:
		if value.Decimal.LessThanOrEqual(decimal.Zero) {
			return ErrDiscountInvalid
		}
		// 固定减免创建时不得超过商品单价
		if productPrice != nil && value.Decimal.GreaterThan(productPrice.Decimal) {
			return ErrDiscountInvalid
		}
	default:
		return ErrDiscountInvalid
	}
	return nil
}

// Create 创建折扣
func (s *DiscountAdminService) Create(input CreateDiscountInput) (*models.Discount, error) {
	if input.ProductID == 0 {
		return nil, ErrDiscountInvalid
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := validateDiscountValue(input.Type, input.Value, &product.PriceAmount); err != nil {
		return nil, err
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() || !input.StartsAt.Before(input.EndsAt) {
		return nil, ErrDiscountInvalid
	}
	minQuantity := input.MinQuantity
	if minQuantity <= 0 {
		minQuantity = 1
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	discount := &models.Discount{
		ProductID:   input.ProductID,
		Type:        input.Type,
		Value:       input.Value,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		IsActive:    isActive,
		MinQuantity: minQuantity,
		Description: input.Description,
	}
	if err := s.discountRepo.Create(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// Update 更新折扣，商品归属不可改
func (s *DiscountAdminService) Update(id uint, input UpdateDiscountInput) (*models.Discount, error) {
	if id == 0 {
		return nil, ErrDiscountInvalid
	}
	existing, err := s.discountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrDiscountNotFound
	}

	// 更新时只校验取值范围，商品价格可能已变动
	if err := validateDiscountValue(input.Type, input.Value, nil); err != nil {
		return nil, err
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() || !input.StartsAt.Before(input.EndsAt) {
		return nil, ErrDiscountInvalid
	}
	minQuantity := input.MinQuantity
	if minQuantity <= 0 {
		minQuantity = 1
	}

	isActive := existing.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	existing.Type = input.Type
	existing.Value = input.Value
	existing.StartsAt = input.StartsAt
	existing.EndsAt = input.EndsAt
	existing.IsActive = isActive
	existing.MinQuantity = minQuantity
	existing.Description = input.Description

	if err := s.discountRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Get 获取折扣详情
func (s *DiscountAdminService) Get(id uint) (*models.Discount, error) {
	discount, err := s.discountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrDiscountNotFound
	}
	return discount, nil
}

// List 获取折扣列表
func (s *DiscountAdminService) List(filter repository.DiscountFilter) ([]models.Discount, int64, error) {
	return s.discountRepo.List(filter)
}

// Delete 删除折扣
func (s *DiscountAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrDiscountInvalid
	}
	existing, err := s.discountRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrDiscountNotFound
	}
	return s.discountRepo.Delete(id)
}

// Activate 批量启用
func (s *DiscountAdminService) Activate(ids []uint) (int64, error) {
	return s.discountRepo.SetActiveByIDs(ids, true)
}

// Deactivate 批量停用
func (s *DiscountAdminService) Deactivate(ids []uint) (int64, error) {
	return s.discountRepo.SetActiveByIDs(ids, false)
}
