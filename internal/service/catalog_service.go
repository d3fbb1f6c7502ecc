package service

import (
	"context"
	"time"

	"github.com/shop-next/internal/cache"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/repository"
)

const categoryCacheKey = "catalog:categories"
const categoryCacheTTL = 5 * time.Minute

// ProductSummary 商品摘要，带当前最优折扣信息
type ProductSummary struct {
	Product        models.Product   `json:"product"`
	Discount       *models.Discount `json:"discount,omitempty"`
	DiscountAmount models.Money     `json:"discount_amount"`
	CurrentPrice   models.Money     `json:"current_price"` // 单件折后价
}

// CatalogService 目录读服务
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	discountRepo repository.DiscountRepository
	pricing      *PricingService
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, discountRepo repository.DiscountRepository, pricing *PricingService) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		discountRepo: discountRepo,
		pricing:      pricing,
	}
}

// ListCategories 获取启用的分类，短暂缓存以减轻目录页读压力
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if found, err := cache.GetJSON(ctx, categoryCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	categories, err := s.categoryRepo.ListActive()
	if err != nil {
		return nil, err
	}
	_ = cache.SetJSON(ctx, categoryCacheKey, categories, categoryCacheTTL)
	return categories, nil
}

// ListProducts 获取上架商品，可按分类 slug 过滤，每件附带当前最优折扣
func (s *CatalogService) ListProducts(categorySlug string, now time.Time) ([]ProductSummary, error) {
	var categoryID uint
	if categorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(categorySlug)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		categoryID = category.ID
	}

	products, err := s.productRepo.ListActive(categoryID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	discounts, err := s.discountRepo.ListByProductIDs(ids)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[uint][]models.Discount)
	for _, discount := range discounts {
		byProduct[discount.ProductID] = append(byProduct[discount.ProductID], discount)
	}

	summaries := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		summary := ProductSummary{Product: product, CurrentPrice: product.PriceAmount}
		best, amount, _ := pickBestDiscount(byProduct[product.ID], product.PriceAmount, 1, now)
		if best != nil {
			summary.Discount = best
			summary.DiscountAmount = amount
			summary.CurrentPrice = best.DiscountedPrice(product.PriceAmount, 1, now)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetProduct 按 slug 获取单个上架商品及其当前价格
func (s *CatalogService) GetProduct(slug string, now time.Time) (*ProductSummary, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	summary := &ProductSummary{Product: *product, CurrentPrice: product.PriceAmount}
	best, amount, err := s.pricing.BestDiscount(product.ID, product.PriceAmount, 1, now)
	if err != nil {
		return nil, err
	}
	if best != nil {
		summary.Discount = best
		summary.DiscountAmount = amount
		summary.CurrentPrice = best.DiscountedPrice(product.PriceAmount, 1, now)
	}
	return summary, nil
}
