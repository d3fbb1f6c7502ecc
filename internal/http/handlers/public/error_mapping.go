package public

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

var promoErrorMappings = []mappedHandlerError{
	{target: service.ErrPromoCodeNotFound, code: response.CodeNotFound},
	{target: service.ErrProductNotFound, code: response.CodeNotFound},
	{target: service.ErrPromoCodeInvalid, code: response.CodeBadRequest},
	{target: service.ErrPromoCodeExpired, code: response.CodeBadRequest},
	{target: service.ErrPromoMinOrderAmount, code: response.CodeBadRequest},
	{target: service.ErrPromoCodeExhausted, code: response.CodeConflict},
	{target: service.ErrPromoAlreadyUsed, code: response.CodeConflict},
}

var cartErrorMappings = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest},
}

var userAuthErrorMappings = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized},
	{target: service.ErrEmailTaken, code: response.CodeConflict},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest},
}

// respondWithMappedError 按映射表输出业务错误，未命中的当作内部错误处理。
func respondWithMappedError(c *gin.Context, mappings []mappedHandlerError, err error, fallbackMsg string) {
	for _, mapping := range mappings {
		if errors.Is(err, mapping.target) {
			response.Error(c, mapping.code, mapping.target.Error())
			return
		}
	}
	shared.RespondError(c, response.CodeInternal, fallbackMsg, err)
}
