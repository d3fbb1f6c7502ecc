package admin

import (
	"strconv"
	"time"

	"github.com/shop-next/internal/http/handlers/shared"
	"github.com/shop-next/internal/http/response"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/repository"
	"github.com/shop-next/internal/service"

	"github.com/gin-gonic/gin"
)

type createDiscountRequest struct {
	ProductID   uint         `json:"product_id" binding:"required"`
	Type        string       `json:"type" binding:"required"`
	Value       models.Money `json:"value"`
	StartsAt    time.Time    `json:"starts_at" binding:"required"`
	EndsAt      time.Time    `json:"ends_at" binding:"required"`
	MinQuantity int          `json:"min_quantity"`
	IsActive    *bool        `json:"is_active"`
	Description string       `json:"description"`
}

type updateDiscountRequest struct {
	Type        string       `json:"type" binding:"required"`
	Value       models.Money `json:"value"`
	StartsAt    time.Time    `json:"starts_at" binding:"required"`
	EndsAt      time.Time    `json:"ends_at" binding:"required"`
	MinQuantity int          `json:"min_quantity"`
	IsActive    *bool        `json:"is_active"`
	Description string       `json:"description"`
}

type bulkIDsRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

type bulkResult struct {
	Affected int64 `json:"affected"`
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID 不合法")
		return 0, false
	}
	return uint(id), true
}

// CreateDiscount 创建商品折扣
func (h *Handler) CreateDiscount(c *gin.Context) {
	var req createDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	discount, err := h.DiscountAdminService.Create(service.CreateDiscountInput{
		ProductID:   req.ProductID,
		Type:        req.Type,
		Value:       req.Value,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		MinQuantity: req.MinQuantity,
		IsActive:    req.IsActive,
		Description: req.Description,
	})
	if err != nil {
		respondWithMappedError(c, err, "创建折扣失败")
		return
	}
	response.Success(c, discount)
}

// UpdateDiscount 更新商品折扣，不允许换绑商品
func (h *Handler) UpdateDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	discount, err := h.DiscountAdminService.Update(id, service.UpdateDiscountInput{
		Type:        req.Type,
		Value:       req.Value,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		MinQuantity: req.MinQuantity,
		IsActive:    req.IsActive,
		Description: req.Description,
	})
	if err != nil {
		respondWithMappedError(c, err, "更新折扣失败")
		return
	}
	response.Success(c, discount)
}

// GetDiscount 查看单个折扣
func (h *Handler) GetDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	discount, err := h.DiscountAdminService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, "获取折扣失败")
		return
	}
	response.Success(c, discount)
}

// ListDiscounts 分页查询折扣
func (h *Handler) ListDiscounts(c *gin.Context) {
	page, limit := shared.NormalizePagination(c)

	filter := repository.DiscountFilter{Page: page, Limit: limit}
	if raw := c.Query("product_id"); raw != "" {
		productID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "商品ID不合法")
			return
		}
		filter.ProductID = uint(productID)
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}
	if c.Query("valid_now") == "true" {
		filter.ValidAt = time.Now()
	}

	discounts, total, err := h.DiscountAdminService.List(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "查询折扣失败", err)
		return
	}
	response.SuccessWithPage(c, discounts, buildPagination(page, limit, total))
}

// DeleteDiscount 删除折扣
func (h *Handler) DeleteDiscount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.DiscountAdminService.Delete(id); err != nil {
		respondWithMappedError(c, err, "删除折扣失败")
		return
	}
	response.Success(c, nil)
}

// ActivateDiscounts 批量启用折扣
func (h *Handler) ActivateDiscounts(c *gin.Context) {
	var req bulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	affected, err := h.DiscountAdminService.Activate(req.IDs)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "批量启用失败", err)
		return
	}
	response.Success(c, bulkResult{Affected: affected})
}

// DeactivateDiscounts 批量停用折扣
func (h *Handler) DeactivateDiscounts(c *gin.Context) {
	var req bulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	affected, err := h.DiscountAdminService.Deactivate(req.IDs)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "批量停用失败", err)
		return
	}
	response.Success(c, bulkResult{Affected: affected})
}
