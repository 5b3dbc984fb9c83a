package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/mindscreen-go/internal/model"
	"github.com/mindcare/mindscreen-go/internal/service"
	"go.uber.org/zap"
)

// ChatHandler 对话处理器
type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

// NewChatHandler 创建对话处理器
func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// HandleChat 处理对话消息
// POST /api/v1/chat
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	resp, err := h.chatService.HandleMessage(c.Request.Context(), req.ConversationID, req.Message)
	if err != nil {
		h.logger.Error("处理对话消息失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "处理消息失败"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleHealth 健康检查
// GET /api/health
func (h *ChatHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
