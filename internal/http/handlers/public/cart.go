package public

import (
	"strconv"
	"time"

	"github.com/shop-next/internal/http/handlers/shared"
	"github.com/shop-next/internal/http/response"
	"github.com/shop-next/internal/models"
	"github.com/shop-next/internal/service"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
	Override  bool `json:"override"`
}

type cartView struct {
	Items      []service.CartItemDetail `json:"items"`
	TotalPrice models.Money             `json:"total_price"`
	TotalCount int                      `json:"total_count"`
}

// GetCart 返回当前会话的购物车内容
func (h *Handler) GetCart(c *gin.Context) {
	state, ok := h.currentSession(c)
	if !ok {
		return
	}

	items, err := h.CartService.Items(state)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "获取购物车失败", err)
		return
	}
	// Items 可能清掉了已下架商品，回写一次
	if !h.saveSession(c, state) {
		return
	}

	response.Success(c, cartView{
		Items:      items,
		TotalPrice: h.CartService.TotalPrice(state),
		TotalCount: h.CartService.Len(state),
	})
}

// AddCartItem 加入或覆盖购物车条目
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数不合法")
		return
	}

	state, ok := h.currentSession(c)
	if !ok {
		return
	}

	result, err := h.CartService.Add(state, req.ProductID, req.Quantity, req.Override, time.Now())
	if err != nil {
		respondWithMappedError(c, cartErrorMappings, err, "加入购物车失败")
		return
	}
	if !h.saveSession(c, state) {
		return
	}

	if result.Degraded {
		response.SuccessWithMsg(c, "已按商品原价加入购物车", result)
		return
	}
	response.Success(c, result)
}

// DeleteCartItem 从购物车移除指定商品
func (h *Handler) DeleteCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		response.BadRequest(c, "商品ID不合法")
		return
	}

	state, ok := h.currentSession(c)
	if !ok {
		return
	}

	h.CartService.Remove(state, uint(productID))
	if !h.saveSession(c, state) {
		return
	}
	response.Success(c, nil)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	state, ok := h.currentSession(c)
	if !ok {
		return
	}

	h.CartService.Clear(state)
	if !h.saveSession(c, state) {
		return
	}
	response.Success(c, nil)
}
