package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pinbox-kr/pinbox-backend/pkg/logger"
)

// Event 클라이언트로 내려가는 실시간 이벤트.
// 주문 상태 변경, 충전 승인/반려 알림에 사용된다.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// Client WebSocket 클라이언트. 같은 사용자가 여러 기기로 붙을 수 있다.
type Client struct {
	Hub     *Hub
	Conn    *Conn
	UserID  uint
	IsAdmin bool
	Send    chan []byte
}

// Hub WebSocket 연결 관리자. 사용자별 알림과 관리자 전체 알림을
// 브로드캐스트한다.
type Hub struct {
	// 등록된 클라이언트들 (UserID -> []*Client - 멀티 디바이스 지원)
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	deliver    chan *directMessage

	mu sync.RWMutex
}

type directMessage struct {
	userID     uint // 0이면 대상 지정 없음
	adminsOnly bool
	message    []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		deliver:    make(chan *directMessage, 1024),
	}
}

// Run Hub 실행. 서버 기동 시 고루틴으로 돌린다.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"is_admin":       client.IsAdmin,
				"total_sessions": len(h.clients[client.UserID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}
				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}
				close(client.Send)
			}
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"user_id": client.UserID,
			})

		case msg := <-h.deliver:
			h.mu.RLock()
			for userID, clientList := range h.clients {
				for _, client := range clientList {
					if msg.adminsOnly && !client.IsAdmin {
						continue
					}
					if !msg.adminsOnly && userID != msg.userID {
						continue
					}

					select {
					case client.Send <- msg.message:
					default:
						// Send 채널이 막혀있음 - 비동기로 정리
						go h.Unregister(client)
						logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
							"user_id": userID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NotifyUser 특정 사용자의 모든 세션에 이벤트 전송.
// 버퍼가 가득 차면 이벤트를 버린다. 알림은 유실돼도 주문 처리에는
// 영향이 없다.
func (h *Hub) NotifyUser(userID uint, event string, payload interface{}) {
	data, err := json.Marshal(Event{Type: event, Payload: payload, At: time.Now()})
	if err != nil {
		logger.Error("Failed to marshal event", err, map[string]interface{}{
			"event": event,
		})
		return
	}

	select {
	case h.deliver <- &directMessage{userID: userID, message: data}:
	default:
		logger.Warn("Deliver channel full, event dropped", map[string]interface{}{
			"user_id": userID,
			"event":   event,
		})
	}
}

// NotifyAdmins 접속 중인 모든 관리자 세션에 이벤트 전송.
func (h *Hub) NotifyAdmins(event string, payload interface{}) {
	data, err := json.Marshal(Event{Type: event, Payload: payload, At: time.Now()})
	if err != nil {
		logger.Error("Failed to marshal event", err, map[string]interface{}{
			"event": event,
		})
		return
	}

	select {
	case h.deliver <- &directMessage{adminsOnly: true, message: data}:
	default:
		logger.Warn("Deliver channel full, admin event dropped", map[string]interface{}{
			"event": event,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsUserOnline 사용자 온라인 여부 확인
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
