package admin

import (
	"strconv"
	"time"

	"github.com/shop-next/internal/http/handlers/shared"
	"github.com/shop-next/internal/http/response"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/queue"
	"github.com/shop-next/internal/repository"
	"github.com/shop-next/internal/service"

	"github.com/gin-gonic/gin"
)

type createPromoRequest struct {
	Code           string       `json:"code" binding:"required"`
	Type           string       `json:"type" binding:"required"`
	Value          models.Money `json:"value"`
	StartsAt       time.Time    `json:"starts_at" binding:"required"`
	EndsAt         time.Time    `json:"ends_at" binding:"required"`
	UsageLimit     int          `json:"usage_limit"`
	MinOrderAmount models.Money `json:"min_order_amount"`
	IsActive       *bool        `json:"is_active"`
	Description    string       `json:"description"`
}

type updatePromoRequest struct {
	Type           string       `json:"type" binding:"required"`
	Value          models.Money `json:"value"`
	StartsAt       time.Time    `json:"starts_at" binding:"required"`
	EndsAt         time.Time    `json:"ends_at" binding:"required"`
	UsageLimit     int          `json:"usage_limit"`
	MinOrderAmount models.Money `json:"min_order_amount"`
	IsActive       *bool        `json:"is_active"`
	Description    string       `json:"description"`
}

// CreatePromoCode 创建促销码
func (h *Handler) CreatePromoCode(c *gin.Context) {
	var req createPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	input := service.CreatePromoInput{
		Code:           req.Code,
		Type:           req.Type,
		Value:          req.Value,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		UsageLimit:     req.UsageLimit,
		MinOrderAmount: req.MinOrderAmount,
		IsActive:       req.IsActive,
		Description:    req.Description,
	}
	if adminID, ok := c.Get("admin_id"); ok {
		if id, ok := adminID.(uint); ok && id > 0 {
			input.CreatedByID = &id
		}
	}

	promo, err := h.PromoAdminService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, "创建促销码失败")
		return
	}
	response.Success(c, promo)
}

// UpdatePromoCode 更新促销码，码本身创建后不可修改
func (h *Handler) UpdatePromoCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	promo, err := h.PromoAdminService.Update(id, service.UpdatePromoInput{
		Type:           req.Type,
		Value:          req.Value,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		UsageLimit:     req.UsageLimit,
		MinOrderAmount: req.MinOrderAmount,
		IsActive:       req.IsActive,
		Description:    req.Description,
	})
	if err != nil {
		respondWithMappedError(c, err, "更新促销码失败")
		return
	}
	response.Success(c, promo)
}

// GetPromoCode 查看单个促销码
func (h *Handler) GetPromoCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	promo, err := h.PromoAdminService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, "获取促销码失败")
		return
	}
	response.Success(c, promo)
}

// ListPromoCodes 分页查询促销码
func (h *Handler) ListPromoCodes(c *gin.Context) {
	page, limit := shared.NormalizePagination(c)

	filter := repository.PromoCodeFilter{
		Code:  c.Query("code"),
		Type:  c.Query("type"),
		Page:  page,
		Limit: limit,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	promos, total, err := h.PromoAdminService.List(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "查询促销码失败", err)
		return
	}
	response.SuccessWithPage(c, promos, buildPagination(page, limit, total))
}

// DeletePromoCode 删除促销码，存在使用记录时拒绝
func (h *Handler) DeletePromoCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.PromoAdminService.Delete(id); err != nil {
		respondWithMappedError(c, err, "删除促销码失败")
		return
	}
	response.Success(c, nil)
}

// ActivatePromoCodes 批量启用促销码
func (h *Handler) ActivatePromoCodes(c *gin.Context) {
	var req bulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	affected, err := h.PromoAdminService.Activate(req.IDs)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "批量启用失败", err)
		return
	}
	response.Success(c, bulkResult{Affected: affected})
}

// DeactivatePromoCodes 批量停用促销码
func (h *Handler) DeactivatePromoCodes(c *gin.Context) {
	var req bulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	affected, err := h.PromoAdminService.Deactivate(req.IDs)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "批量停用失败", err)
		return
	}
	response.Success(c, bulkResult{Affected: affected})
}

// ResetPromoUsage 批量清空促销码的使用台账和计数器
func (h *Handler) ResetPromoUsage(c *gin.Context) {
	var req bulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	affected, err := h.PromoAdminService.ResetUsage(req.IDs)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "重置使用记录失败", err)
		return
	}
	shared.RequestLog(c).Infow("promo_usage_reset", "ids", req.IDs, "affected", affected)

	// 重置后补一次对账，保证缓存计数和台账一致
	if h.QueueClient != nil && h.QueueClient.Enabled() {
		for _, id := range req.IDs {
			if err := h.QueueClient.EnqueuePromoUsageSync(queue.PromoUsageSyncPayload{PromoCodeID: id}); err != nil {
				shared.RequestLog(c).Warnw("promo_usage_sync_enqueue_failed", "promo_code_id", id, "error", err)
			}
		}
	}
	response.Success(c, bulkResult{Affected: affected})
}

// PromoCodeStats 返回促销码使用统计
func (h *Handler) PromoCodeStats(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	stats, err := h.PromoService.Stats(id, days, time.Now())
	if err != nil {
		respondWithMappedError(c, err, "获取统计失败")
		return
	}
	response.Success(c, stats)
}

// PromoCodeUsages 分页查询促销码使用台账
func (h *Handler) PromoCodeUsages(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	page, limit := shared.NormalizePagination(c)
	usages, total, err := h.PromoService.Usages(id, page, limit)
	if err != nil {
		respondWithMappedError(c, err, "查询使用记录失败")
		return
	}
	response.SuccessWithPage(c, usages, buildPagination(page, limit, total))
}

// SyncPromoUsage 触发使用数对账；队列可用时异步执行，否则就地同步
func (h *Handler) SyncPromoUsage(c *gin.Context) {
	var promoCodeID uint
	if raw := c.Query("id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "ID 不合法")
			return
		}
		promoCodeID = uint(id)
	}

	if h.QueueClient != nil && h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueuePromoUsageSync(queue.PromoUsageSyncPayload{PromoCodeID: promoCodeID}); err != nil {
			shared.RespondError(c, response.CodeInternal, "对账任务下发失败", err)
			return
		}
		response.SuccessWithMsg(c, "对账任务已下发", nil)
		return
	}

	if promoCodeID > 0 {
		used, err := h.PromoService.UpdateUsageCount(promoCodeID)
		if err != nil {
			respondWithMappedError(c, err, "对账失败")
			return
		}
		response.Success(c, gin.H{"promo_code_id": promoCodeID, "used_count": used})
		return
	}

	synced, err := h.PromoService.SyncAllUsageCounts()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "对账失败", err)
		return
	}
	response.Success(c, gin.H{"synced": synced})
}
