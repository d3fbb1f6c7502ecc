package public

import (
	"strconv"
	"time"

	"github.com/shop-next/internal/http/handlers/shared"
	"github.com/shop-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListCategories 返回启用中的分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "获取分类失败", err)
		return
	}
	response.Success(c, categories)
}

// ListProducts 返回上架商品列表，按当前生效折扣折算单件现价
func (h *Handler) ListProducts(c *gin.Context) {
	categorySlug := c.Query("category")
	products, err := h.CatalogService.ListProducts(categorySlug, time.Now())
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "获取商品列表失败", err)
		return
	}
	response.Success(c, products)
}

// GetProduct 按 slug 返回单个上架商品
func (h *Handler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")
	summary, err := h.CatalogService.GetProduct(slug, time.Now())
	if err != nil {
		respondWithMappedError(c, cartErrorMappings, err, "获取商品失败")
		return
	}
	response.Success(c, summary)
}

// QuoteProduct 按数量和当前会话计算商品报价
func (h *Handler) QuoteProduct(c *gin.Context) {
	slug := c.Param("slug")
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil || quantity < 1 {
		response.BadRequest(c, "数量不合法")
		return
	}

	summary, err := h.CatalogService.GetProduct(slug, time.Now())
	if err != nil {
		respondWithMappedError(c, cartErrorMappings, err, "获取商品失败")
		return
	}

	state, ok := h.currentSession(c)
	if !ok {
		return
	}

	quote, err := h.PricingService.QuoteProduct(&summary.Product, quantity, state, time.Now())
	if err != nil {
		respondWithMappedError(c, cartErrorMappings, err, "计算报价失败")
		return
	}
	response.Success(c, quote)
}
