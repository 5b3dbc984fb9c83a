package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mindcare/mindscreen-go/internal/analyzer"
	"github.com/mindcare/mindscreen-go/internal/classifier"
	"github.com/mindcare/mindscreen-go/internal/engine"
	"github.com/mindcare/mindscreen-go/internal/model"
	"go.uber.org/zap"
)

// transitionAnnouncements 按转换原因选择的过渡话术
var transitionAnnouncements = map[string]string{
	engine.ReasonMaxMessagesReached:  "Cảm ơn bạn đã chia sẻ nhiều thông tin. Bây giờ tôi muốn đánh giá chi tiết hơn thông qua một số câu hỏi cụ thể.",
	engine.ReasonThresholdMet:        "Dựa trên những gì bạn chia sẻ, tôi nghĩ chúng ta nên đánh giá chi tiết hơn. Tôi sẽ hỏi bạn một số câu hỏi cụ thể.",
	engine.ReasonSuicideRiskDetected: "Tôi rất quan tâm đến những gì bạn chia sẻ. Để hỗ trợ bạn tốt nhất, tôi cần đánh giá tình hình ngay.",
}

// defaultAnnouncement 未知原因时的兜底话术
const defaultAnnouncement = "Chúng ta hãy chuyển sang đánh giá chi tiết hơn."

// assessingReminder 处于量表阶段时对闲聊消息的提示
const assessingReminder = "Chúng ta đang trong quá trình đánh giá. Vui lòng hoàn thành bộ câu hỏi trước khi tiếp tục trò chuyện."

// ChatService 对话服务
// 串联安全守卫、AI 分类、深度/时长分析与转换判定；
// 同一会话的回合串行处理，不同会话互不阻塞。
type ChatService struct {
	store       Store
	guard       *analyzer.SuicideRiskGuard
	aiClf       *classifier.EmotionalContextClassifier
	keywordClf  *classifier.KeywordClassifier
	depth       *analyzer.ConversationDepthAnalyzer
	temporal    *analyzer.TemporalIndicatorExtractor
	transition  *engine.TransitionEngine
	followup    *engine.FollowupGenerator
	assessments *AssessmentService
	logger      *zap.Logger

	locks sync.Map // conversationID -> *sync.Mutex
}

// NewChatService 创建对话服务
func NewChatService(
	store Store,
	guard *analyzer.SuicideRiskGuard,
	aiClf *classifier.EmotionalContextClassifier,
	keywordClf *classifier.KeywordClassifier,
	depth *analyzer.ConversationDepthAnalyzer,
	temporal *analyzer.TemporalIndicatorExtractor,
	transition *engine.TransitionEngine,
	followup *engine.FollowupGenerator,
	assessments *AssessmentService,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		store:       store,
		guard:       guard,
		aiClf:       aiClf,
		keywordClf:  keywordClf,
		depth:       depth,
		temporal:    temporal,
		transition:  transition,
		followup:    followup,
		assessments: assessments,
		logger:      logger,
	}
}

// lockConversation 获取会话级互斥锁
func (s *ChatService) lockConversation(conversationID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(conversationID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// HandleMessage 处理一条用户消息，返回追问或量表启动信息
func (s *ChatService) HandleMessage(ctx context.Context, conversationID, message string) (*model.ChatResponse, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	mu := s.lockConversation(conversationID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.store.LoadConversation(ctx, conversationID)
	if errors.Is(err, ErrNotFound) {
		state = model.NewConversationState(conversationID)
	} else if err != nil {
		return nil, err
	}

	if state.Phase != model.PhaseChatting {
		return &model.ChatResponse{
			ConversationID: conversationID,
			Reply:          assessingReminder,
		}, nil
	}

	state.AppendMessage(model.RoleUser, message)

	// 安全守卫先于一切：AI 成败都不影响危机检测
	if s.guard.Detect(state.Messages) {
		verdict := model.TransitionVerdict{
			ShouldTransition: true,
			AssessmentType:   model.AssessmentSuicideRisk,
			Reason:           engine.ReasonSuicideRiskDetected,
			Rationale:        "Phát hiện dấu hiệu nguy cơ tự tử trong tin nhắn gần đây.",
		}
		state.RecordCategoryScore(model.CategorySuicideRisk, 1.0)
		return s.startAssessment(ctx, state, verdict, false)
	}

	analysis := s.aiClf.Classify(ctx, message, state.Messages)
	degraded := analysis.Fallback
	if degraded {
		// AI 不可用时退回关键词分类，保持输出形状一致
		analysis = s.keywordClf.Classify(message)
	}

	state.RecordCategoryScore(analysis.Category, analysis.Severity)

	depthScore := s.depth.ConversationDepth(state.Messages)
	durationScore := s.temporal.Score(s.combinedUserText(state))

	verdict := s.transition.Decide(analysis, depthScore, durationScore, state)

	if verdict.ShouldTransition {
		return s.startAssessment(ctx, state, verdict, degraded)
	}

	reply := s.followup.Generate(analysis, depthScore)
	state.AppendMessage(model.RoleAssistant, reply)

	if err := s.store.SaveConversation(ctx, state); err != nil {
		return nil, err
	}

	s.logger.Info("对话回合完成",
		zap.String("conversationId", conversationID),
		zap.String("category", string(analysis.Category)),
		zap.Float64("severity", analysis.Severity),
		zap.Float64("weightedScore", verdict.WeightedScore),
		zap.Bool("degraded", degraded))

	return &model.ChatResponse{
		ConversationID: conversationID,
		Reply:          reply,
		Verdict:        verdict,
		Degraded:       degraded,
	}, nil
}

// startAssessment 执行转换：创建量表会话并推进对话阶段
func (s *ChatService) startAssessment(ctx context.Context, state *model.ConversationState, verdict model.TransitionVerdict, degraded bool) (*model.ChatResponse, error) {
	announcement, ok := transitionAnnouncements[verdict.Reason]
	if !ok {
		announcement = defaultAnnouncement
	}

	start, err := s.assessments.Start(ctx, state.ConversationID, verdict.AssessmentType, announcement)
	if err != nil {
		return nil, err
	}

	reply := announcement + "\n\n" + start.FirstQuestion
	state.AppendMessage(model.RoleAssistant, reply)
	state.Phase = model.PhaseAssessing

	if err := s.store.SaveConversation(ctx, state); err != nil {
		return nil, err
	}

	s.logger.Info("会话转入量表阶段",
		zap.String("conversationId", state.ConversationID),
		zap.String("assessmentType", string(verdict.AssessmentType)),
		zap.String("reason", verdict.Reason))

	return &model.ChatResponse{
		ConversationID: state.ConversationID,
		Reply:          reply,
		Verdict:        verdict,
		Assessment:     start,
		Degraded:       degraded,
	}, nil
}

// combinedUserText 拼接全部用户消息，用于时长信号提取
func (s *ChatService) combinedUserText(state *model.ConversationState) string {
	var parts []string
	for _, msg := range state.UserMessages() {
		parts = append(parts, msg.Content)
	}
	return strings.Join(parts, " ")
}
