package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pinbox-kr/pinbox-backend/internal/app/service"
	apperrors "github.com/pinbox-kr/pinbox-backend/internal/errors"
	"github.com/pinbox-kr/pinbox-backend/internal/middleware"
)

// CodeController 자동 발송용 코드 재고 관리. 전부 관리자 전용이다.
type CodeController struct {
	codeService service.CodeService
}

func NewCodeController(codeService service.CodeService) *CodeController {
	return &CodeController{
		codeService: codeService,
	}
}

type ImportCodesRequest struct {
	CombinationID *uint    `json:"combination_id"`
	Codes         []string `json:"codes" binding:"required,min=1"`
}

// ImportCodes bulk-registers codes as available stock for a product,
// optionally scoped to one option combination
// POST /api/v1/admin/products/:id/codes
func (ctrl *CodeController) ImportCodes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ImportCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	count, err := ctrl.codeService.ImportCodes(productID, req.CombinationID, req.Codes)
	if err != nil {
		if errors.Is(err, service.ErrNoCodesProvided) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "등록할 코드가 없습니다")
			return
		}
		log.Error("Failed to import codes", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "코드 등록 중 오류가 발생했습니다")
		return
	}

	log.Info("Codes imported", map[string]interface{}{
		"product_id": productID,
		"count":      count,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Codes imported successfully",
		"imported": count,
	})
}

// CountAvailable returns the available code stock for a product
// GET /api/v1/admin/products/:id/codes/count?combination_id=3
func (ctrl *CodeController) CountAvailable(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var combinationID *uint
	if combStr := c.Query("combination_id"); combStr != "" {
		v, err := strconv.ParseUint(combStr, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 조합 ID입니다")
			return
		}
		id := uint(v)
		combinationID = &id
	}

	count, err := ctrl.codeService.CountAvailable(productID, combinationID)
	if err != nil {
		log.Error("Failed to count available codes", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "코드 재고 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"available": count,
	})
}

// RevokeCode removes an undelivered code from stock
// DELETE /api/v1/admin/codes/:id
func (ctrl *CodeController) RevokeCode(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.codeService.RevokeCode(id); err != nil {
		if errors.Is(err, service.ErrCodeNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "코드를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to revoke code", err, map[string]interface{}{
			"code_id": id,
		})
		apperrors.InternalError(c, "코드 회수 중 오류가 발생했습니다")
		return
	}

	log.Info("Code revoked", map[string]interface{}{
		"code_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Code revoked successfully",
	})
}
