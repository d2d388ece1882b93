package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xxml-lang/xxmlhub/middleware"
	"github.com/xxml-lang/xxmlhub/services"
	"github.com/xxml-lang/xxmlhub/utils"
)

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// serviceError translates the service error taxonomy into the response
// envelope. baseCode groups the numeric app codes per call site the way the
// rest of the API numbers its errors.
func serviceError(ctx *gin.Context, baseCode int, err error) {
	switch {
	case err == services.ErrUnauthenticated:
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
	case err == services.ErrForbidden:
		utils.Error(ctx, http.StatusForbidden, baseCode+1, "forbidden")
	case err == services.ErrNotFound:
		utils.Error(ctx, http.StatusNotFound, baseCode+2, "not found")
	case err == services.ErrWrongPostType:
		utils.Error(ctx, http.StatusBadRequest, baseCode+3, "operation not supported for this post type")
	default:
		if ve, ok := services.AsValidation(err); ok {
			utils.Error(ctx, http.StatusBadRequest, baseCode+4, ve.Error())
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, baseCode+5, "internal error")
	}
}

func paginationPayload(page, pageSize int, total int64) gin.H {
	return gin.H{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}
