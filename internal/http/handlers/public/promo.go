package public

import (
	"time"

	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/http/response"
	"github.com/shop-next/internal/session"

	"github.com/gin-gonic/gin"
)

type applyPromoRequest struct {
	Code      string `json:"code" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
}

type removePromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyPromo 把促销码兑换到指定商品并记入当前会话
func (h *Handler) ApplyPromo(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req applyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	state, ok := h.currentSession(c)
	if !ok {
		return
	}

	result, err := h.PromoService.Redeem(userID, req.ProductID, req.Code, time.Now())
	if err != nil {
		respondWithMappedError(c, promoErrorMappings, err, "促销码兑换失败")
		return
	}

	state.SetProductPromo(req.ProductID, session.AppliedPromo{
		PromoCodeID: result.Promo.ID,
		Code:        result.Promo.Code,
	})
	state.AppliedPromoCode = result.Promo.Code
	if !h.saveSession(c, state) {
		return
	}

	response.Success(c, result)
}

// RemovePromo 从当前会话中移除促销码
func (h *Handler) RemovePromo(c *gin.Context) {
	var req removePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	state, ok := h.currentSession(c)
	if !ok {
		return
	}

	state.RemovePromo(models.NormalizePromoCode(req.Code))
	if !h.saveSession(c, state) {
		return
	}
	response.Success(c, nil)
}
