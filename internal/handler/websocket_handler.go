package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mindcare/mindscreen-go/internal/model"
	"github.com/mindcare/mindscreen-go/internal/service"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境应该检查 Origin 白名单
		return true
	},
}

// WebSocketHandler WebSocket 处理器
// 同一连接绑定一个会话，消息按到达顺序处理。
type WebSocketHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

// NewWebSocketHandler 创建 WebSocket 处理器
func NewWebSocketHandler(chatService *service.ChatService, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// HandleWebSocket WebSocket 连接入口
// GET /ws/chat?cid=<conversationId>，cid 缺省时新建会话
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conversationID := c.Query("cid")
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket 升级失败", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket 连接建立",
		zap.String("conversationId", conversationID),
		zap.String("clientIp", c.ClientIP()))

	for {
		var req model.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("WebSocket 读取错误", zap.Error(err))
			}
			break
		}

		if req.Message == "" {
			if err := conn.WriteJSON(gin.H{"error": "message 不能为空"}); err != nil {
				break
			}
			continue
		}

		resp, err := h.chatService.HandleMessage(c.Request.Context(), conversationID, req.Message)
		if err != nil {
			h.logger.Error("处理 WebSocket 消息失败", zap.Error(err),
				zap.String("conversationId", conversationID))
			if err := conn.WriteJSON(gin.H{"error": "处理消息失败"}); err != nil {
				break
			}
			continue
		}

		if err := conn.WriteJSON(resp); err != nil {
			h.logger.Error("WebSocket 写入失败", zap.Error(err))
			break
		}
	}

	h.logger.Info("WebSocket 连接断开", zap.String("conversationId", conversationID))
}
