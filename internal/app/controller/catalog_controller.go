package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pinbox-kr/pinbox-backend/internal/app/ppom"
	"github.com/pinbox-kr/pinbox-backend/internal/app/service"
	apperrors "github.com/pinbox-kr/pinbox-backend/internal/errors"
	"github.com/pinbox-kr/pinbox-backend/internal/middleware"
)

// CatalogController 상품의 옵션 카탈로그 조회와 선택 검증/견적 API.
// 구매 플로우에서 프론트엔드가 가장 자주 호출하는 엔드포인트들이다.
type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

type SelectionsRequest struct {
	Selections ppom.Selections `json:"selections" binding:"required"`
}

// GetCatalog returns a product's option groups and combinations
// GET /api/v1/products/:id/catalog
func (ctrl *CatalogController) GetCatalog(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 상품 ID입니다")
		return
	}

	catalog, err := ctrl.catalogService.GetCatalog(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "상품을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch catalog", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "상품 옵션 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"catalog": catalog,
	})
}

// ValidateSelections checks whether a selection set satisfies the
// product's required option groups
// POST /api/v1/products/:id/validate
func (ctrl *CatalogController) ValidateSelections(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 상품 ID입니다")
		return
	}

	var req SelectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "선택 정보 형식이 올바르지 않습니다")
		return
	}

	result, err := ctrl.catalogService.ValidateSelections(c.Request.Context(), uint(id), req.Selections)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "상품을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to validate selections", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "옵션 검증 중 오류가 발생했습니다")
		return
	}

	// 누락된 그룹은 이름만 내려준다
	missing := make([]gin.H, 0, len(result.MissingGroups))
	for _, g := range result.MissingGroups {
		missing = append(missing, gin.H{
			"id":   g.ID,
			"name": g.Name,
			"slug": g.Slug,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":          result.Valid,
		"missing_groups": missing,
	})
}

// QuotePrice prices a selection set against the product's options
// and combination overrides
// POST /api/v1/products/:id/quote
func (ctrl *CatalogController) QuotePrice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 상품 ID입니다")
		return
	}

	var req SelectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "선택 정보 형식이 올바르지 않습니다")
		return
	}

	quote, err := ctrl.catalogService.QuotePrice(c.Request.Context(), uint(id), req.Selections)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "상품을 찾을 수 없습니다")
		case errors.Is(err, service.ErrProductInactive):
			apperrors.UnprocessableEntity(c, apperrors.ProductInactive, "판매 중인 상품이 아닙니다")
		case errors.Is(err, service.ErrInvalidSelections):
			apperrors.UnprocessableEntity(c, apperrors.OptionRequiredMissing, "필수 옵션이 선택되지 않았습니다")
		default:
			log.Error("Failed to quote price", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.InternalError(c, "가격 계산 중 오류가 발생했습니다")
		}
		return
	}

	log.Debug("Price quoted", map[string]interface{}{
		"product_id":  id,
		"total_price": quote.TotalPrice,
		"available":   quote.Available,
	})

	c.JSON(http.StatusOK, gin.H{
		"quote": quote,
	})
}
