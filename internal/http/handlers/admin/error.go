package admin

import (
	"errors"

	"github.com/shop-next/internal/http/handlers/shared"
	"github.com/shop-next/internal/http/response"
	"github.com/shop-next/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError struct {
	target error
	code   int
}

var adminErrorMappings = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest},
	{target: service.ErrNotFound, code: response.CodeNotFound},
	{target: service.ErrProductNotFound, code: response.CodeNotFound},
	{target: service.ErrDiscountNotFound, code: response.CodeNotFound},
	{target: service.ErrDiscountInvalid, code: response.CodeBadRequest},
	{target: service.ErrPromoCodeNotFound, code: response.CodeNotFound},
	{target: service.ErrPromoCodeInvalid, code: response.CodeBadRequest},
	{target: service.ErrPromoCodeExists, code: response.CodeConflict},
	{target: service.ErrPromoCodeInUse, code: response.CodeConflict},
}

func buildPagination(page, limit int, total int64) response.Pagination {
	totalPage := int64(0)
	if limit > 0 {
		totalPage = (total + int64(limit) - 1) / int64(limit)
	}
	return response.Pagination{Page: page, PageSize: limit, Total: total, TotalPage: totalPage}
}

// respondWithMappedError 按映射表输出业务错误，未命中的当作内部错误处理。
func respondWithMappedError(c *gin.Context, err error, fallbackMsg string) {
	for _, mapping := range adminErrorMappings {
		if errors.Is(err, mapping.target) {
			response.Error(c, mapping.code, mapping.target.Error())
			return
		}
	}
	shared.RespondError(c, response.CodeInternal, fallbackMsg, err)
}
