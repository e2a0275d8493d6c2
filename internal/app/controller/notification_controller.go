package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pinbox-kr/pinbox-backend/internal/app/model"
	apperrors "github.com/pinbox-kr/pinbox-backend/internal/errors"
	"github.com/pinbox-kr/pinbox-backend/internal/middleware"
	ws "github.com/pinbox-kr/pinbox-backend/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// 허용된 도메인 목록
		allowedOrigins := map[string]bool{
			"https://pinbox.kr":     true,
			"http://localhost:5173": true, // 개발 환경
			"http://localhost:3000": true, // 개발 환경
		}
		return allowedOrigins[origin]
	},
}

// NotificationController 주문/충전 실시간 알림용 WebSocket 연결 처리.
// 알림 수신 전용이라 메시지 송신 API는 없다.
type NotificationController struct {
	hub *ws.Hub
}

func NewNotificationController(hub *ws.Hub) *NotificationController {
	return &NotificationController{
		hub: hub,
	}
}

// WebSocketHandler upgrades the connection and registers the client
// with the notification hub
// GET /api/v1/notifications/ws
func (ctrl *NotificationController) WebSocketHandler(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	// 미들웨어에서 이미 인증 완료
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}
	role, _ := middleware.GetUserRole(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err, nil)
		return
	}

	client := &ws.Client{
		Hub:     ctrl.hub,
		Conn:    &ws.Conn{Conn: conn},
		UserID:  userID,
		IsAdmin: role == model.RoleAdmin,
		Send:    make(chan []byte, 256),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("WebSocket connection established", map[string]interface{}{
		"user_id": userID,
		"admin":   client.IsAdmin,
	})
}

// IsOnline reports whether a user currently has a live connection (Admin only)
// GET /api/v1/admin/notifications/online/:id
func (ctrl *NotificationController) IsOnline(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": id,
		"online":  ctrl.hub.IsUserOnline(id),
	})
}
