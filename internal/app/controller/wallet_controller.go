package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	"github.com/pinbox-kr/pinbox-backend/internal/app/service"
	apperrors "github.com/pinbox-kr/pinbox-backend/internal/errors"
	"github.com/pinbox-kr/pinbox-backend/internal/middleware"
)

// WalletController 지갑 잔액/원장 조회와 수동 충전 요청 플로우.
// 충전은 사용자가 입금 증빙과 함께 요청을 올리고 관리자가 승인/반려한다.
type WalletController struct {
	walletService service.WalletService
}

func NewWalletController(walletService service.WalletService) *WalletController {
	return &WalletController{
		walletService: walletService,
	}
}

type SubmitTopUpRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	ScreenshotURL string  `json:"screenshot_url"`
}

type ReviewTopUpRequest struct {
	Note string `json:"note"`
}

// GetBalance returns the user's wallet balance
// GET /api/v1/wallet/balance
func (ctrl *WalletController) GetBalance(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	balance, err := ctrl.walletService.GetBalance(userID)
	if err != nil {
		log.Error("Failed to fetch wallet balance", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "잔액 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balance": balance,
	})
}

// GetTransactions returns the user's wallet ledger, newest first
// GET /api/v1/wallet/transactions?limit=20&offset=0
func (ctrl *WalletController) GetTransactions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if v, err := strconv.Atoi(offsetStr); err == nil && v >= 0 {
			offset = v
		}
	}

	transactions, err := ctrl.walletService.GetTransactions(userID, limit, offset)
	if err != nil {
		log.Error("Failed to fetch wallet transactions", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "거래 내역 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// SubmitTopUp submits a manual top-up request for admin review
// POST /api/v1/wallet/topups
func (ctrl *WalletController) SubmitTopUp(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	var req SubmitTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	request, err := ctrl.walletService.SubmitTopUp(userID, req.Amount, req.ScreenshotURL)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTopUpAmount) {
			apperrors.UnprocessableEntity(c, apperrors.WalletInvalidAmount, "충전 금액이 허용 범위를 벗어났습니다")
			return
		}
		log.Error("Failed to submit top-up request", err, map[string]interface{}{
			"user_id": userID,
			"amount":  req.Amount,
		})
		apperrors.InternalError(c, "충전 요청 중 오류가 발생했습니다")
		return
	}

	log.Info("Top-up request submitted", map[string]interface{}{
		"user_id":    userID,
		"request_id": request.ID,
		"amount":     req.Amount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Top-up request submitted",
		"topup_request": request,
	})
}

// GetMyTopUps lists the user's top-up requests
// GET /api/v1/wallet/topups
func (ctrl *WalletController) GetMyTopUps(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	requests, err := ctrl.walletService.GetUserTopUps(userID)
	if err != nil {
		log.Error("Failed to fetch top-up requests", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "충전 요청 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topup_requests": requests,
		"count":          len(requests),
	})
}

// GetTopUpsByStatus lists top-up requests in a given status (Admin only)
// GET /api/v1/admin/topups?status=pending
func (ctrl *WalletController) GetTopUpsByStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := model.TopUpStatus(c.DefaultQuery("status", string(model.TopUpStatusPending)))

	requests, err := ctrl.walletService.GetTopUpsByStatus(status)
	if err != nil {
		log.Error("Failed to fetch top-up requests by status", err, map[string]interface{}{
			"status": status,
		})
		apperrors.InternalError(c, "충전 요청 조회 중 오류가 발생했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topup_requests": requests,
		"count":          len(requests),
	})
}

// ApproveTopUp approves a pending top-up and credits the wallet (Admin only)
// POST /api/v1/admin/topups/:id/approve
func (ctrl *WalletController) ApproveTopUp(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReviewTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	request, err := ctrl.walletService.ApproveTopUp(adminID, id, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTopUpNotFound):
			apperrors.NotFound(c, apperrors.WalletTopUpNotFound, "충전 요청을 찾을 수 없습니다")
		case errors.Is(err, service.ErrTopUpNotPending):
			apperrors.Conflict(c, apperrors.WalletTopUpAlreadyDone, "이미 처리된 충전 요청입니다")
		default:
			log.Error("Failed to approve top-up", err, map[string]interface{}{
				"admin_id":   adminID,
				"request_id": id,
			})
			apperrors.InternalError(c, "충전 승인 중 오류가 발생했습니다")
		}
		return
	}

	log.Info("Top-up approved", map[string]interface{}{
		"admin_id":   adminID,
		"request_id": request.ID,
		"user_id":    request.UserID,
		"amount":     request.Amount,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":        "Top-up approved",
		"topup_request": request,
	})
}

// RejectTopUp rejects a pending top-up request (Admin only)
// POST /api/v1/admin/topups/:id/reject
func (ctrl *WalletController) RejectTopUp(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	adminID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReviewTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	request, err := ctrl.walletService.RejectTopUp(adminID, id, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTopUpNotFound):
			apperrors.NotFound(c, apperrors.WalletTopUpNotFound, "충전 요청을 찾을 수 없습니다")
		case errors.Is(err, service.ErrTopUpNotPending):
			apperrors.Conflict(c, apperrors.WalletTopUpAlreadyDone, "이미 처리된 충전 요청입니다")
		default:
			log.Error("Failed to reject top-up", err, map[string]interface{}{
				"admin_id":   adminID,
				"request_id": id,
			})
			apperrors.InternalError(c, "충전 반려 중 오류가 발생했습니다")
		}
		return
	}

	log.Info("Top-up rejected", map[string]interface{}{
		"admin_id":   adminID,
		"request_id": request.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":        "Top-up rejected",
		"topup_request": request,
	})
}
