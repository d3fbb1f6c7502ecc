package service

import (
	"time"

	"github.com/shop-next/internal/constants"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PromoAdminService 促销码管理服务
type PromoAdminService struct {
	promoRepo repository.PromoCodeRepository
	usageRepo repository.PromoUsageRepository
}

// NewPromoAdminService 创建促销码管理服务
func NewPromoAdminService(promoRepo repository.PromoCodeRepository, usageRepo repository.PromoUsageRepository) *PromoAdminService {
	return &PromoAdminService{
		promoRepo: promoRepo,
		usageRepo: usageRepo,
	}
}

// CreatePromoInput 创建促销码输入
type CreatePromoInput struct {
	Code           string
	Type           string
	Value          models.Money
	StartsAt       time.Time
	EndsAt         time.Time
	UsageLimit     int
	MinOrderAmount models.Money
	IsActive       *bool
	CreatedByID    *uint
	Description    string
}

// UpdatePromoInput 更新促销码输入，码本身创建后不可修改
type UpdatePromoInput struct {
	Type           string
	Value          models.Money
	StartsAt       time.Time
	EndsAt         time.Time
	UsageLimit     int
	MinOrderAmount models.Money
	IsActive       *bool
	Description    string
}

func validatePromoValue(promoType string, value models.Money) error {
	switch promoType {
	case constants.PromoTypePercentage:
		if value.Decimal.LessThanOrEqual(decimal.Zero) || value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return ErrPromoCodeInvalid
		}
	case constants.PromoTypeFixed:
		if value.Decimal.LessThanOrEqual(decimal.Zero) {
			return ErrPromoCodeInvalid
		}
	case constants.PromoTypeFreeShipping:
		if !value.Decimal.IsZero() {
			return ErrPromoCodeInvalid
		}
	default:
		return ErrPromoCodeInvalid
	}
	return nil
}

// Create 创建促销码
func (s *PromoAdminService) Create(input CreatePromoInput) (*models.PromoCode, error) {
	code := models.NormalizePromoCode(input.Code)
	if len(code) < constants.PromoCodeMinLength {
		return nil, ErrPromoCodeInvalid
	}
	if err := validatePromoValue(input.Type, input.Value); err != nil {
		return nil, err
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() || !input.StartsAt.Before(input.EndsAt) {
		return nil, ErrPromoCodeInvalid
	}
	if input.UsageLimit < 0 {
		return nil, ErrPromoCodeInvalid
	}
	if input.MinOrderAmount.Decimal.LessThan(decimal.Zero) {
		return nil, ErrPromoCodeInvalid
	}

	exist, err := s.promoRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrPromoCodeExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	promo := &models.PromoCode{
		Code:           code,
		Type:           input.Type,
		Value:          input.Value,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		UsageLimit:     input.UsageLimit,
		UsedCount:      0,
		MinOrderAmount: input.MinOrderAmount,
		IsActive:       isActive,
		CreatedByID:    input.CreatedByID,
		Description:    input.Description,
	}

	if err := s.promoRepo.Create(promo); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrPromoCodeExists
		}
		return nil, err
	}
	return promo, nil
}

// Update 更新促销码，码值保持不变
func (s *PromoAdminService) Update(id uint, input UpdatePromoInput) (*models.PromoCode, error) {
	if id == 0 {
		return nil, ErrPromoCodeInvalid
	}
	existing, err := s.promoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPromoCodeNotFound
	}

	if err := validatePromoValue(input.Type, input.Value); err != nil {
		return nil, err
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() || !input.StartsAt.Before(input.EndsAt) {
		return nil, ErrPromoCodeInvalid
	}
	if input.UsageLimit < 0 {
		return nil, ErrPromoCodeInvalid
	}
	if input.MinOrderAmount.Decimal.LessThan(decimal.Zero) {
		return nil, ErrPromoCodeInvalid
	}

	isActive := existing.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	existing.Type = input.Type
	existing.Value = input.Value
	existing.StartsAt = input.StartsAt
	existing.EndsAt = input.EndsAt
	existing.UsageLimit = input.UsageLimit
	existing.MinOrderAmount = input.MinOrderAmount
	existing.IsActive = isActive
	existing.Description = input.Description

	if err := s.promoRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Get 获取促销码详情
func (s *PromoAdminService) Get(id uint) (*models.PromoCode, error) {
	promo, err := s.promoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoCodeNotFound
	}
	return promo, nil
}

// List 获取促销码列表
func (s *PromoAdminService) List(filter repository.PromoCodeFilter) ([]models.PromoCode, int64, error) {
	return s.promoRepo.List(filter)
}

// Delete 删除促销码；存在兑换流水时拒绝删除以保留审计轨迹
func (s *PromoAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrPromoCodeInvalid
	}
	existing, err := s.promoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPromoCodeNotFound
	}

	count, err := s.usageRepo.CountByCode(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPromoCodeInUse
	}
	return s.promoRepo.Delete(id)
}

// Activate 批量启用，重复调用结果一致
func (s *PromoAdminService) Activate(ids []uint) (int64, error) {
	return s.promoRepo.SetActiveByIDs(ids, true)
}

// Deactivate 批量停用，重复调用结果一致
func (s *PromoAdminService) Deactivate(ids []uint) (int64, error) {
	return s.promoRepo.SetActiveByIDs(ids, false)
}

// ResetUsage 批量清零使用记录：删除台账流水并把计数归零。
// 只清计数不清台账会破坏计数可由台账重算的约束，所以两者必须一起做。
func (s *PromoAdminService) ResetUsage(ids []uint) (int64, error) {
	var reset int64
	for _, id := range ids {
		err := models.DB.Transaction(func(tx *gorm.DB) error {
			usageRepo := s.usageRepo.WithTx(tx)
			promoRepo := s.promoRepo.WithTx(tx)
			if _, err := usageRepo.DeleteByCode(id); err != nil {
				return err
			}
			return promoRepo.SetUsedCount(id, 0)
		})
		if err != nil {
			return reset, err
		}
		reset++
	}
	return reset, nil
}
