package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mindcare/mindscreen-go/internal/assessment"
	"github.com/mindcare/mindscreen-go/internal/model"
	"go.uber.org/zap"
)

// AssessmentService 量表服务
// 负责量表会话的创建、提交计分与目录查询。
type AssessmentService struct {
	store   Store
	scoring *assessment.ScoringEngine
	logger  *zap.Logger
}

// NewAssessmentService 创建量表服务
func NewAssessmentService(store Store, scoring *assessment.ScoringEngine, logger *zap.Logger) *AssessmentService {
	return &AssessmentService{
		store:   store,
		scoring: scoring,
		logger:  logger,
	}
}

// Questionnaire 查询量表定义
func (s *AssessmentService) Questionnaire(assessmentType model.AssessmentType) (*assessment.Questionnaire, error) {
	questionnaire, ok := assessment.Get(assessmentType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", assessment.ErrUnknownAssessment, assessmentType)
	}
	return questionnaire, nil
}

// Start 创建一次量表作答会话
// announcement 为空时使用量表自带的说明文字。
func (s *AssessmentService) Start(ctx context.Context, conversationID string, assessmentType model.AssessmentType, announcement string) (*model.AssessmentStart, error) {
	questionnaire, ok := assessment.Get(assessmentType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", assessment.ErrUnknownAssessment, assessmentType)
	}

	session := &model.AssessmentSession{
		SessionID:      uuid.NewString(),
		ConversationID: conversationID,
		Type:           assessmentType,
		Responses:      make(map[string]int),
		StartedAt:      time.Now(),
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	if announcement == "" {
		announcement = questionnaire.Description
	}

	s.logger.Info("量表会话已创建",
		zap.String("sessionId", session.SessionID),
		zap.String("conversationId", conversationID),
		zap.String("assessmentType", string(assessmentType)))

	return &model.AssessmentStart{
		SessionID:      session.SessionID,
		AssessmentType: assessmentType,
		Announcement:   announcement,
		FirstQuestion:  questionnaire.Questions[0].Text,
		QuestionCount:  len(questionnaire.Questions),
	}, nil
}

// Submit 提交全部作答并计分
// 计分失败（缺答、越界、类型不符）不会落库，会话保持可重交状态。
func (s *AssessmentService) Submit(ctx context.Context, req *model.AssessmentSubmitRequest) (*model.ScoringResult, error) {
	session, err := s.store.LoadSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Type != req.AssessmentType {
		return nil, fmt.Errorf("%w: 会话量表为 %s, 提交量表为 %s",
			assessment.ErrUnknownAssessment, session.Type, req.AssessmentType)
	}

	session.Responses = req.Responses
	result, err := s.scoring.Score(session)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.CompletedAt = &now
	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	// 量表完成后关闭关联会话，避免继续闲聊触发二次转换
	if session.ConversationID != "" {
		if state, err := s.store.LoadConversation(ctx, session.ConversationID); err == nil {
			state.Phase = model.PhaseClosed
			if err := s.store.SaveConversation(ctx, state); err != nil {
				s.logger.Warn("关闭会话失败", zap.Error(err),
					zap.String("conversationId", session.ConversationID))
			}
		}
	}

	return result, nil
}
