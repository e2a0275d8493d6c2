package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/ppom"
	"github.com/pinbox-kr/pinbox-backend/internal/app/service"
	apperrors "github.com/pinbox-kr/pinbox-backend/internal/errors"
	"github.com/pinbox-kr/pinbox-backend/internal/middleware"
)

// OptionController 옵션 그룹/옵션/배정/조합 관리 API. 전부 관리자 전용이다.
type OptionController struct {
	optionService    service.OptionService
	combinationLimit int
}

func NewOptionController(optionService service.OptionService, combinationLimit int) *OptionController {
	return &OptionController{
		optionService:    optionService,
		combinationLimit: combinationLimit,
	}
}

type CreateOptionGroupRequest struct {
	Name          string              `json:"name" binding:"required"`
	Slug          string              `json:"slug" binding:"required"`
	Description   string              `json:"description"`
	DisplayType   model.DisplayType   `json:"display_type"`
	SelectionType model.SelectionType `json:"selection_type"`
	IsRequired    bool                `json:"is_required"`
	IsGlobal      bool                `json:"is_global"`
	SortOrder     int                 `json:"sort_order"`
}

type UpdateOptionGroupRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	DisplayType   model.DisplayType   `json:"display_type"`
	SelectionType model.SelectionType `json:"selection_type"`
	IsRequired    *bool               `json:"is_required"`
	IsActive      *bool               `json:"is_active"`
	SortOrder     *int                `json:"sort_order"`
}

type CreateOptionRequest struct {
	Name              string                  `json:"name" binding:"required"`
	Slug              string                  `json:"slug" binding:"required"`
	Description       string                  `json:"description"`
	DisplayValue      string                  `json:"display_value"`
	ColorCode         string                  `json:"color_code"`
	ImageURL          string                  `json:"image_url"`
	PriceModifier     float64                 `json:"price_modifier"`
	PriceModifierType model.PriceModifierType `json:"price_modifier_type"`
	StockType         model.StockType         `json:"stock_type"`
	StockQuantity     int                     `json:"stock_quantity"`
	IsDefault         bool                    `json:"is_default"`
	SortOrder         int                     `json:"sort_order"`
}

type UpdateOptionRequest struct {
	Name              string                  `json:"name"`
	Description       string                  `json:"description"`
	DisplayValue      string                  `json:"display_value"`
	ColorCode         string                  `json:"color_code"`
	ImageURL          string                  `json:"image_url"`
	PriceModifier     *float64                `json:"price_modifier"`
	PriceModifierType model.PriceModifierType `json:"price_modifier_type"`
	StockType         model.StockType         `json:"stock_type"`
	StockQuantity     *int                    `json:"stock_quantity"`
	IsDefault         *bool                   `json:"is_default"`
	IsActive          *bool                   `json:"is_active"`
	SortOrder         *int                    `json:"sort_order"`
}

type AssignGroupRequest struct {
	OptionGroupID uint  `json:"option_group_id" binding:"required"`
	IsRequired    *bool `json:"is_required"`
	SortOrder     int   `json:"sort_order"`
}

type UpdateAssignmentRequest struct {
	IsRequired *bool `json:"is_required"`
	SortOrder  *int  `json:"sort_order"`
}

type MaterializeRequest struct {
	Limit int `json:"limit"`
}

type UpdateCombinationRequest struct {
	BasePrice       *float64        `json:"base_price"`
	CalculatedPrice *float64        `json:"calculated_price"`
	StockType       model.StockType `json:"stock_type"`
	StockQuantity   *int            `json:"stock_quantity"`
	IsAvailable     *bool           `json:"is_available"`
	IsActive        *bool           `json:"is_active"`
	SKU             string          `json:"sku"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 ID 형식입니다")
		return 0, false
	}
	return uint(id), true
}

// CreateGroup creates an option group
// POST /api/v1/admin/option-groups
func (ctrl *OptionController) CreateGroup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateOptionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	displayType := req.DisplayType
	if displayType == "" {
		displayType = model.DisplayDropdown
	}
	selectionType := req.SelectionType
	if selectionType == "" {
		selectionType = model.SelectionSingle
	}

	group := &model.OptionGroup{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		DisplayType:   displayType,
		SelectionType: selectionType,
		IsRequired:    req.IsRequired,
		IsGlobal:      req.IsGlobal,
		IsActive:      true,
		SortOrder:     req.SortOrder,
	}

	if err := ctrl.optionService.CreateGroup(group); err != nil {
		log.Error("Failed to create option group", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create option group")
		return
	}

	log.Info("Option group created", map[string]interface{}{
		"group_id": group.ID,
		"name":     group.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Option group created successfully",
		"option_group": group,
	})
}

// GetGroups lists option groups
// GET /api/v1/admin/option-groups?global=true
func (ctrl *OptionController) GetGroups(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	groups, err := ctrl.optionService.GetGroups(c.Query("global") == "true")
	if err != nil {
		log.Error("Failed to fetch option groups", err, nil)
		apperrors.InternalError(c, "옵션 그룹 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"option_groups": groups,
		"count":         len(groups),
	})
}

// GetGroupByID returns one option group with its options
// GET /api/v1/admin/option-groups/:id
func (ctrl *OptionController) GetGroupByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := ctrl.optionService.GetGroupByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOptionGroupNotFound) {
			apperrors.NotFound(c, apperrors.OptionGroupNotFound, "옵션 그룹을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch option group", err, map[string]interface{}{
			"group_id": id,
		})
		apperrors.InternalError(c, "옵션 그룹 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"option_group": group,
	})
}

// UpdateGroup updates an option group
// PUT /api/v1/admin/option-groups/:id
func (ctrl *OptionController) UpdateGroup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOptionGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	group, err := ctrl.optionService.GetGroupByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOptionGroupNotFound) {
			apperrors.NotFound(c, apperrors.OptionGroupNotFound, "옵션 그룹을 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "옵션 그룹 조회 중 오류가 발생했습니다")
		return
	}

	if req.Name != "" {
		group.Name = req.Name
	}
	if req.Description != "" {
		group.Description = req.Description
	}
	if req.DisplayType != "" {
		group.DisplayType = req.DisplayType
	}
	if req.SelectionType != "" {
		group.SelectionType = req.SelectionType
	}
	if req.IsRequired != nil {
		group.IsRequired = *req.IsRequired
	}
	if req.IsActive != nil {
		group.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		group.SortOrder = *req.SortOrder
	}

	if err := ctrl.optionService.UpdateGroup(c.Request.Context(), group); err != nil {
		log.Error("Failed to update option group", err, map[string]interface{}{
			"group_id": id,
		})
		apperrors.InternalError(c, "옵션 그룹 수정 중 오류가 발생했습니다")
		return
	}

	log.Info("Option group updated", map[string]interface{}{
		"group_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":      "Option group updated successfully",
		"option_group": group,
	})
}

// DeleteGroup deletes an option group. Groups still assigned to any
// product are refused.
// DELETE /api/v1/admin/option-groups/:id
func (ctrl *OptionController) DeleteGroup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.optionService.DeleteGroup(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrOptionGroupNotFound):
			apperrors.NotFound(c, apperrors.OptionGroupNotFound, "옵션 그룹을 찾을 수 없습니다")
		case errors.Is(err, service.ErrGroupInUse):
			apperrors.Conflict(c, apperrors.OptionGroupInUse, "상품에 배정된 옵션 그룹은 삭제할 수 없습니다")
		default:
			log.Error("Failed to delete option group", err, map[string]interface{}{
				"group_id": id,
			})
			apperrors.InternalError(c, "옵션 그룹 삭제 중 오류가 발생했습니다")
		}
		return
	}

	log.Info("Option group deleted", map[string]interface{}{
		"group_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Option group deleted successfully",
	})
}

// AddOption adds an option to a group
// POST /api/v1/admin/option-groups/:id/options
func (ctrl *OptionController) AddOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	modifierType := req.PriceModifierType
	if modifierType == "" {
		modifierType = model.ModifierFixed
	}
	stockType := req.StockType
	if stockType == "" {
		stockType = model.StockInherit
	}

	option := &model.Option{
		OptionGroupID:     groupID,
		Name:              req.Name,
		Slug:              req.Slug,
		Description:       req.Description,
		DisplayValue:      req.DisplayValue,
		ColorCode:         req.ColorCode,
		ImageURL:          req.ImageURL,
		PriceModifier:     req.PriceModifier,
		PriceModifierType: modifierType,
		StockType:         stockType,
		StockQuantity:     req.StockQuantity,
		IsDefault:         req.IsDefault,
		IsActive:          true,
		SortOrder:         req.SortOrder,
	}

	if err := ctrl.optionService.AddOption(c.Request.Context(), option); err != nil {
		if errors.Is(err, service.ErrOptionGroupNotFound) {
			apperrors.NotFound(c, apperrors.OptionGroupNotFound, "옵션 그룹을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to add option", err, map[string]interface{}{
			"group_id": groupID,
			"name":     req.Name,
		})
		apperrors.InternalError(c, "옵션 추가 중 오류가 발생했습니다")
		return
	}

	log.Info("Option added", map[string]interface{}{
		"group_id":  groupID,
		"option_id": option.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Option added successfully",
		"option":  option,
	})
}

// UpdateOption updates an option
// PUT /api/v1/admin/options/:id
func (ctrl *OptionController) UpdateOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	option, err := ctrl.optionService.GetOptionByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOptionNotFound) {
			apperrors.NotFound(c, apperrors.OptionNotFound, "옵션을 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "옵션 조회 중 오류가 발생했습니다")
		return
	}

	if req.Name != "" {
		option.Name = req.Name
	}
	if req.Description != "" {
		option.Description = req.Description
	}
	if req.DisplayValue != "" {
		option.DisplayValue = req.DisplayValue
	}
	if req.ColorCode != "" {
		option.ColorCode = req.ColorCode
	}
	if req.ImageURL != "" {
		option.ImageURL = req.ImageURL
	}
	if req.PriceModifier != nil {
		option.PriceModifier = *req.PriceModifier
	}
	if req.PriceModifierType != "" {
		option.PriceModifierType = req.PriceModifierType
	}
	if req.StockType != "" {
		option.StockType = req.StockType
	}
	if req.StockQuantity != nil {
		option.StockQuantity = *req.StockQuantity
	}
	if req.IsDefault != nil {
		option.IsDefault = *req.IsDefault
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		option.SortOrder = *req.SortOrder
	}

	if err := ctrl.optionService.UpdateOption(c.Request.Context(), option); err != nil {
		log.Error("Failed to update option", err, map[string]interface{}{
			"option_id": id,
		})
		apperrors.InternalError(c, "옵션 수정 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Option updated successfully",
		"option":  option,
	})
}

// DeleteOption deletes an option
// DELETE /api/v1/admin/options/:id
func (ctrl *OptionController) DeleteOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.optionService.DeleteOption(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrOptionNotFound) {
			apperrors.NotFound(c, apperrors.OptionNotFound, "옵션을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete option", err, map[string]interface{}{
			"option_id": id,
		})
		apperrors.InternalError(c, "옵션 삭제 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Option deleted successfully",
	})
}

// AssignGroup assigns an option group to a product
// POST /api/v1/admin/products/:id/option-groups
func (ctrl *OptionController) AssignGroup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AssignGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	assignment := &model.ProductOptionGroup{
		ProductID:     productID,
		OptionGroupID: req.OptionGroupID,
		IsRequired:    req.IsRequired,
		SortOrder:     req.SortOrder,
	}

	if err := ctrl.optionService.AssignGroup(c.Request.Context(), assignment); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "상품을 찾을 수 없습니다")
		case errors.Is(err, service.ErrOptionGroupNotFound):
			apperrors.NotFound(c, apperrors.OptionGroupNotFound, "옵션 그룹을 찾을 수 없습니다")
		default:
			log.Error("Failed to assign option group", err, map[string]interface{}{
				"product_id": productID,
				"group_id":   req.OptionGroupID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "assign option group")
		}
		return
	}

	log.Info("Option group assigned", map[string]interface{}{
		"product_id": productID,
		"group_id":   req.OptionGroupID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Option group assigned successfully",
		"assignment": assignment,
	})
}

// UnassignGroup removes an option group assignment from a product
// DELETE /api/v1/admin/products/:id/option-groups/:groupID
func (ctrl *OptionController) UnassignGroup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "groupID")
	if !ok {
		return
	}

	if err := ctrl.optionService.UnassignGroup(c.Request.Context(), productID, groupID); err != nil {
		log.Error("Failed to unassign option group", err, map[string]interface{}{
			"product_id": productID,
			"group_id":   groupID,
		})
		apperrors.InternalError(c, "옵션 그룹 배정 해제 중 오류가 발생했습니다")
		return
	}

	log.Info("Option group unassigned", map[string]interface{}{
		"product_id": productID,
		"group_id":   groupID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Option group unassigned successfully",
	})
}

// UpdateAssignment changes an assignment's required override or sort order
// PUT /api/v1/admin/products/:id/option-groups/:groupID
func (ctrl *OptionController) UpdateAssignment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "groupID")
	if !ok {
		return
	}

	var req UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	assignment := &model.ProductOptionGroup{
		ProductID:     productID,
		OptionGroupID: groupID,
		IsRequired:    req.IsRequired,
	}
	if req.SortOrder != nil {
		assignment.SortOrder = *req.SortOrder
	}

	if err := ctrl.optionService.UpdateAssignment(c.Request.Context(), assignment); err != nil {
		log.Error("Failed to update assignment", err, map[string]interface{}{
			"product_id": productID,
			"group_id":   groupID,
		})
		apperrors.InternalError(c, "옵션 그룹 배정 수정 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assignment updated successfully",
	})
}

// GetCombinations lists a product's option combinations
// GET /api/v1/admin/products/:id/combinations
func (ctrl *OptionController) GetCombinations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	combinations, err := ctrl.optionService.GetCombinations(productID)
	if err != nil {
		log.Error("Failed to fetch combinations", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.InternalError(c, "옵션 조합 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"combinations": combinations,
		"count":        len(combinations),
	})
}

// MaterializeCombinations generates combination rows for every single-select
// option cross product the product does not already have
// POST /api/v1/admin/products/:id/combinations/materialize
func (ctrl *OptionController) MaterializeCombinations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	// 요청에 한도가 없으면 서버 설정값 사용
	limit := req.Limit
	if limit <= 0 {
		limit = ctrl.combinationLimit
	}

	result, err := ctrl.optionService.MaterializeCombinations(c.Request.Context(), productID, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "상품을 찾을 수 없습니다")
		case errors.Is(err, ppom.ErrNoSingleSelectGroups):
			apperrors.UnprocessableEntity(c, apperrors.CombinationNoGroups, "조합을 생성할 단일 선택 그룹이 없습니다")
		case errors.Is(err, ppom.ErrTooManyCombinations):
			apperrors.UnprocessableEntity(c, apperrors.CombinationLimitReached, "생성 가능한 조합 수 한도를 초과했습니다")
		default:
			log.Error("Failed to materialize combinations", err, map[string]interface{}{
				"product_id": productID,
			})
			apperrors.InternalError(c, "옵션 조합 생성 중 오류가 발생했습니다")
		}
		return
	}

	log.Info("Combinations materialized", map[string]interface{}{
		"product_id": productID,
		"created":    result.Created,
		"skipped":    result.Skipped,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Combinations materialized successfully",
		"created": result.Created,
		"skipped": result.Skipped,
	})
}

// UpdateCombination updates a combination's price, stock and flags.
// The combination key and owning product never change.
// PUT /api/v1/admin/combinations/:id
func (ctrl *OptionController) UpdateCombination(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCombinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	combination, err := ctrl.optionService.GetCombinationByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCombinationNotFound) {
			apperrors.NotFound(c, apperrors.CombinationNotFound, "옵션 조합을 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "옵션 조합 조회 중 오류가 발생했습니다")
		return
	}

	if req.BasePrice != nil {
		combination.BasePrice = *req.BasePrice
	}
	if req.CalculatedPrice != nil {
		combination.CalculatedPrice = *req.CalculatedPrice
	}
	if req.StockType != "" {
		combination.StockType = req.StockType
	}
	if req.StockQuantity != nil {
		combination.StockQuantity = *req.StockQuantity
	}
	if req.IsAvailable != nil {
		combination.IsAvailable = *req.IsAvailable
	}
	if req.IsActive != nil {
		combination.IsActive = *req.IsActive
	}
	if req.SKU != "" {
		combination.SKU = req.SKU
	}

	if err := ctrl.optionService.UpdateCombination(c.Request.Context(), combination); err != nil {
		log.Error("Failed to update combination", err, map[string]interface{}{
			"combination_id": id,
		})
		apperrors.InternalError(c, "옵션 조합 수정 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Combination updated successfully",
		"combination": combination,
	})
}

// DeleteCombination deletes a combination
// DELETE /api/v1/admin/combinations/:id
func (ctrl *OptionController) DeleteCombination(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.optionService.DeleteCombination(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCombinationNotFound) {
			apperrors.NotFound(c, apperrors.CombinationNotFound, "옵션 조합을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete combination", err, map[string]interface{}{
			"combination_id": id,
		})
		apperrors.InternalError(c, "옵션 조합 삭제 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Combination deleted successfully",
	})
}
