package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/damoang/rokn-storefront/internal/common"
	"github.com/damoang/rokn-storefront/internal/middleware"
	"github.com/damoang/rokn-storefront/internal/ws"
	pkglogger "github.com/damoang/rokn-storefront/pkg/logger"
)

// WSHandler 세션 실시간 알림 WebSocket
type WSHandler struct {
	hub            *ws.Hub
	allowedOrigins []string
	upgrader       websocket.Upgrader
}

// NewWSHandler 생성자. allowedOrigins는 쉼표 구분 목록이며 비었거나 "*"이면 모두 허용한다.
func NewWSHandler(hub *ws.Hub, allowedOrigins string) *WSHandler {
	h := &WSHandler{
		hub:            hub,
		allowedOrigins: parseOrigins(allowedOrigins),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func parseOrigins(origins string) []string {
	var result []string
	for _, p := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" && trimmed != "*" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (h *WSHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Connect godoc
// @Summary      세션 실시간 알림 WebSocket
// @Description  장바구니/즐겨찾기/주문 토스트와 반영된 어드바이저 응답을 push 한다
// @Tags         storefront-session
// @Success      101
// @Failure      400  {object}  common.APIResponse
// @Router       /storefront/ws [get]
func (h *WSHandler) Connect(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Session required", nil)
		return
	}

	log := pkglogger.WithSessionID(sessionID)
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade가 이미 에러 응답을 썼다
		log.Warn().Err(err).Str("origin", c.GetHeader("Origin")).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, sessionID)
	h.hub.Register(client)
	log.Debug().Int("connections", h.hub.ClientCount(sessionID)).Msg("websocket connected")

	go client.WritePump()
	go client.ReadPump()
}
