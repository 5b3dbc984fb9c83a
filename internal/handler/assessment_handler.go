package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/mindscreen-go/internal/assessment"
	"github.com/mindcare/mindscreen-go/internal/model"
	"github.com/mindcare/mindscreen-go/internal/service"
	"go.uber.org/zap"
)

// AssessmentHandler 量表处理器
type AssessmentHandler struct {
	assessmentService *service.AssessmentService
	logger            *zap.Logger
}

// NewAssessmentHandler 创建量表处理器
func NewAssessmentHandler(assessmentService *service.AssessmentService, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
		logger:            logger,
	}
}

// HandleQuestionnaire 查询量表定义
// GET /api/v1/assessments/:type
func (h *AssessmentHandler) HandleQuestionnaire(c *gin.Context) {
	assessmentType := model.AssessmentType(c.Param("type"))

	questionnaire, err := h.assessmentService.Questionnaire(assessmentType)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, questionnaire)
}

// HandleStart 手动启动量表会话
// POST /api/v1/assessments/start
func (h *AssessmentHandler) HandleStart(c *gin.Context) {
	var req model.AssessmentStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	start, err := h.assessmentService.Start(c.Request.Context(), req.ConversationID, req.AssessmentType, "")
	if err != nil {
		if errors.Is(err, assessment.ErrUnknownAssessment) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("启动量表会话失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "启动量表失败"})
		return
	}

	c.JSON(http.StatusOK, start)
}

// HandleSubmit 提交量表作答并返回评分结果
// POST /api/v1/assessments/submit
func (h *AssessmentHandler) HandleSubmit(c *gin.Context) {
	var req model.AssessmentSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误: " + err.Error()})
		return
	}

	result, err := h.assessmentService.Submit(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "量表会话不存在"})
		case errors.Is(err, assessment.ErrUnknownAssessment),
			errors.Is(err, assessment.ErrIncompleteSession),
			errors.Is(err, assessment.ErrScoreOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("量表提交失败", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "量表提交失败"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
