package repository

import (
	"errors"
	"time"

	"github.com/shop-next/internal/models"

	"gorm.io/gorm"
)

// DiscountFilter 折扣列表过滤条件
type DiscountFilter struct {
	ProductID uint
	IsActive  *bool
	// ValidAt 非零时仅返回在该时刻生效窗口内的折扣
	ValidAt time.Time
	Page    int
	Limit   int
}

// DiscountRepository 商品折扣数据访问接口
type DiscountRepository interface {
	GetByID(id uint) (*models.Discount, error)
	ListByProductID(productID uint) ([]models.Discount, error)
	ListByProductIDs(productIDs []uint) ([]models.Discount, error)
	List(filter DiscountFilter) ([]models.Discount, int64, error)
	Create(discount *models.Discount) error
	Update(discount *models.Discount) error
	Delete(id uint) error
	SetActiveByIDs(ids []uint, active bool) (int64, error)
	WithTx(tx *gorm.DB) *GormDiscountRepository
}

// GormDiscountRepository GORM 实现
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository 创建折扣仓库
func NewDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDiscountRepository) WithTx(tx *gorm.DB) *GormDiscountRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountRepository{db: tx}
}

// GetByID 根据ID获取折扣
func (r *GormDiscountRepository) GetByID(id uint) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.First(&discount, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// ListByProductID 获取某商品的全部折扣
func (r *GormDiscountRepository) ListByProductID(productID uint) ([]models.Discount, error) {
	var discounts []models.Discount
	if err := r.db.Where("product_id = ?", productID).Order("id asc").Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

// ListByProductIDs 批量获取多个商品的折扣
func (r *GormDiscountRepository) ListByProductIDs(productIDs []uint) ([]models.Discount, error) {
	if len(productIDs) == 0 {
		return []models.Discount{}, nil
	}
	var discounts []models.Discount
	if err := r.db.Where("product_id IN ?", productIDs).Order("id asc").Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

// List 按条件分页获取折扣列表
func (r *GormDiscountRepository) List(filter DiscountFilter) ([]models.Discount, int64, error) {
	query := r.db.Model(&models.Discount{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if !filter.ValidAt.IsZero() {
		query = query.Where("starts_at <= ? AND ends_at >= ?", filter.ValidAt, filter.ValidAt)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var discounts []models.Discount
	if err := applyPagination(query, filter.Page, filter.Limit).Order("id desc").Find(&discounts).Error; err != nil {
		return nil, 0, err
	}
	return discounts, total, nil
}

// Create 创建折扣
func (r *GormDiscountRepository) Create(discount *models.Discount) error {
	return r.db.Create(discount).Error
}

// Update 更新折扣
func (r *GormDiscountRepository) Update(discount *models.Discount) error {
	return r.db.Save(discount).Error
}

// Delete 删除折扣
func (r *GormDiscountRepository) Delete(id uint) error {
	return r.db.Delete(&models.Discount{}, id).Error
}

// SetActiveByIDs 批量设置启用状态，返回受影响行数
func (r *GormDiscountRepository) SetActiveByIDs(ids []uint, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Discount{}).Where("id IN ?", ids).Update("is_active", active)
	return result.RowsAffected, result.Error
}
