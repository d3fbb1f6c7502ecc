package repository

import (
	"errors"

	"github.com/shop-next/internal/models"

	"gorm.io/gorm"
)

// PromoCodeFilter 促销码列表过滤条件
type PromoCodeFilter struct {
	Code     string
	Type     string
	IsActive *bool
	Page     int
	Limit    int
}

// PromoCodeRepository 促销码数据访问接口
type PromoCodeRepository interface {
	GetByID(id uint) (*models.PromoCode, error)
	GetByCode(code string) (*models.PromoCode, error)
	List(filter PromoCodeFilter) ([]models.PromoCode, int64, error)
	Create(promo *models.PromoCode) error
	Update(promo *models.PromoCode) error
	Delete(id uint) error
	IncrementUsedCount(id uint) error
	SetUsedCount(id uint, count int) error
	SetActiveByIDs(ids []uint, active bool) (int64, error)
	ListIDs() ([]uint, error)
	WithTx(tx *gorm.DB) *GormPromoCodeRepository
}

// GormPromoCodeRepository GORM 实现
type GormPromoCodeRepository struct {
	db *gorm.DB
}

// NewPromoCodeRepository 创建促销码仓库
func NewPromoCodeRepository(db *gorm.DB) *GormPromoCodeRepository {
	return &GormPromoCodeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromoCodeRepository) WithTx(tx *gorm.DB) *GormPromoCodeRepository {
	if tx == nil {
		return r
	}
	return &GormPromoCodeRepository{db: tx}
}

// GetByID 根据ID获取促销码
func (r *GormPromoCodeRepository) GetByID(id uint) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := r.db.First(&promo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promo, nil
}

// GetByCode 根据码值获取促销码，调用方需先归一化
func (r *GormPromoCodeRepository) GetByCode(code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := r.db.Where("code = ?", code).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promo, nil
}

// List 按条件分页获取促销码列表
func (r *GormPromoCodeRepository) List(filter PromoCodeFilter) ([]models.PromoCode, int64, error) {
	query := r.db.Model(&models.PromoCode{})
	if filter.Code != "" {
		query = query.Where("code LIKE ?", "%"+filter.Code+"%")
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var promos []models.PromoCode
	if err := applyPagination(query, filter.Page, filter.Limit).Order("id desc").Find(&promos).Error; err != nil {
		return nil, 0, err
	}
	return promos, total, nil
}

// Create 创建促销码
func (r *GormPromoCodeRepository) Create(promo *models.PromoCode) error {
	return r.db.Create(promo).Error
}

// Update 更新促销码
func (r *GormPromoCodeRepository) Update(promo *models.PromoCode) error {
	return r.db.Save(promo).Error
}

// Delete 删除促销码
func (r *GormPromoCodeRepository) Delete(id uint) error {
	return r.db.Delete(&models.PromoCode{}, id).Error
}

// IncrementUsedCount 原子自增使用计数
func (r *GormPromoCodeRepository) IncrementUsedCount(id uint) error {
	return r.db.Model(&models.PromoCode{}).Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1)).Error
}

// SetUsedCount 回写使用计数，用于与流水对账
func (r *GormPromoCodeRepository) SetUsedCount(id uint, count int) error {
	return r.db.Model(&models.PromoCode{}).Where("id = ?", id).
		UpdateColumn("used_count", count).Error
}

// SetActiveByIDs 批量设置启用状态，返回受影响行数
func (r *GormPromoCodeRepository) SetActiveByIDs(ids []uint, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.PromoCode{}).Where("id IN ?", ids).Update("is_active", active)
	return result.RowsAffected, result.Error
}

// ListIDs 获取全部促销码ID
func (r *GormPromoCodeRepository) ListIDs() ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.PromoCode{}).Order("id asc").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
