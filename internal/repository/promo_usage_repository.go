package repository

import (
	"time"

	"github.com/shop-next/internal/models"

	"gorm.io/gorm"
)

// PromoUsageDailyCount 按天聚合的核销次数
type PromoUsageDailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// PromoUsageRepository 促销码核销流水数据访问接口
type PromoUsageRepository interface {
	Create(usage *models.PromoUsage) error
	ExistsByTriple(promoCodeID, userID, productID uint) (bool, error)
	CountByCode(promoCodeID uint) (int64, error)
	ListByCode(promoCodeID uint, page, limit int) ([]models.PromoUsage, int64, error)
	DeleteByCode(promoCodeID uint) (int64, error)
	SumDiscountByCode(promoCodeID uint) (models.Money, error)
	DailyCounts(promoCodeID uint, since time.Time) ([]PromoUsageDailyCount, error)
	WithTx(tx *gorm.DB) *GormPromoUsageRepository
}

// GormPromoUsageRepository GORM 实现
type GormPromoUsageRepository struct {
	db *gorm.DB
}

// NewPromoUsageRepository 创建核销流水仓库
func NewPromoUsageRepository(db *gorm.DB) *GormPromoUsageRepository {
	return &GormPromoUsageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromoUsageRepository) WithTx(tx *gorm.DB) *GormPromoUsageRepository {
	if tx == nil {
		return r
	}
	return &GormPromoUsageRepository{db: tx}
}

// Create 写入一条核销流水，唯一索引冲突由调用方处理
func (r *GormPromoUsageRepository) Create(usage *models.PromoUsage) error {
	return r.db.Create(usage).Error
}

// ExistsByTriple 判断同一促销码、用户、商品组合是否已核销
func (r *GormPromoUsageRepository) ExistsByTriple(promoCodeID, userID, productID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PromoUsage{}).
		Where("promo_code_id = ? AND user_id = ? AND product_id = ?", promoCodeID, userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByCode 统计某促销码的核销总数，是使用计数的权威来源
func (r *GormPromoUsageRepository) CountByCode(promoCodeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PromoUsage{}).
		Where("promo_code_id = ?", promoCodeID).
		Count(&count).Error
	return count, err
}

// ListByCode 分页获取某促销码的核销流水
func (r *GormPromoUsageRepository) ListByCode(promoCodeID uint, page, limit int) ([]models.PromoUsage, int64, error) {
	query := r.db.Model(&models.PromoUsage{}).Where("promo_code_id = ?", promoCodeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var usages []models.PromoUsage
	if err := applyPagination(query, page, limit).Order("used_at desc, id desc").Find(&usages).Error; err != nil {
		return nil, 0, err
	}
	return usages, total, nil
}

// DeleteByCode 清空某促销码的全部核销流水，返回删除行数
func (r *GormPromoUsageRepository) DeleteByCode(promoCodeID uint) (int64, error) {
	result := r.db.Where("promo_code_id = ?", promoCodeID).Delete(&models.PromoUsage{})
	return result.RowsAffected, result.Error
}

// SumDiscountByCode 统计某促销码累计让利金额
func (r *GormPromoUsageRepository) SumDiscountByCode(promoCodeID uint) (models.Money, error) {
	var row struct {
		Total models.Money
	}
	err := r.db.Model(&models.PromoUsage{}).
		Select("COALESCE(SUM(discount_amount), 0) AS total").
		Where("promo_code_id = ?", promoCodeID).
		Scan(&row).Error
	if err != nil {
		return models.Money{}, err
	}
	return row.Total, nil
}

// DailyCounts 统计某促销码自某时刻起按天的核销次数
func (r *GormPromoUsageRepository) DailyCounts(promoCodeID uint, since time.Time) ([]PromoUsageDailyCount, error) {
	var rows []PromoUsageDailyCount
	err := r.db.Model(&models.PromoUsage{}).
		Select("DATE(used_at) AS day, COUNT(*) AS count").
		Where("promo_code_id = ? AND used_at >= ?", promoCodeID, since).
		Group("DATE(used_at)").
		Order("day asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
