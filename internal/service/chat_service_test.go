package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mindcare/mindscreen-go/internal/analyzer"
	"github.com/mindcare/mindscreen-go/internal/assessment"
	"github.com/mindcare/mindscreen-go/internal/classifier"
	"github.com/mindcare/mindscreen-go/internal/client"
	"github.com/mindcare/mindscreen-go/internal/config"
	"github.com/mindcare/mindscreen-go/internal/engine"
	"github.com/mindcare/mindscreen-go/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCompleter 固定应答的聊天补全替身
type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Chat(_ context.Context, _ []client.Message) (string, error) {
	return f.reply, f.err
}

// newTestServices 用内存存储和替身模型组装完整服务
func newTestServices(completer classifier.ChatCompleter) (*ChatService, *AssessmentService, *MemoryStore) {
	logger := zap.NewNop()
	store := NewMemoryStore()

	assessmentService := NewAssessmentService(store, assessment.NewScoringEngine(logger), logger)
	chatService := NewChatService(
		store,
		analyzer.NewSuicideRiskGuard(),
		classifier.NewEmotionalContextClassifier(completer, time.Second, logger),
		classifier.NewKeywordClassifier(),
		analyzer.NewConversationDepthAnalyzer(),
		analyzer.NewTemporalIndicatorExtractor(),
		engine.NewTransitionEngine(config.DefaultTransitionConfig(), logger),
		engine.NewFollowupGenerator(),
		assessmentService,
		logger,
	)
	return chatService, assessmentService, store
}

func TestHandleMessageGeneratesConversationID(t *testing.T) {
	chatService, _, _ := newTestServices(&fakeCompleter{
		reply: `{"severity": 0.2, "type": "normal_worry", "reasoning": "x", "confidence": 0.9}`,
	})

	resp, err := chatService.HandleMessage(context.Background(), "", "hôm nay em hơi lo")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ConversationID)
	assert.NotEmpty(t, resp.Reply)
	assert.Nil(t, resp.Assessment)
}

func TestHandleMessageCrisisOverridesEverything(t *testing.T) {
	// AI 挂掉也必须触发安全守卫
	chatService, _, store := newTestServices(&fakeCompleter{err: errors.New("api down")})

	resp, err := chatService.HandleMessage(context.Background(), "conv-crisis", "tôi không muốn sống nữa")
	require.NoError(t, err)

	require.NotNil(t, resp.Assessment)
	assert.Equal(t, model.AssessmentSuicideRisk, resp.Assessment.AssessmentType)
	assert.True(t, resp.Verdict.ShouldTransition)
	assert.Equal(t, engine.ReasonSuicideRiskDetected, resp.Verdict.Reason)

	state, err := store.LoadConversation(context.Background(), "conv-crisis")
	require.NoError(t, err)
	assert.Equal(t, model.PhaseAssessing, state.Phase)
}

func TestHandleMessageDegradedFallsBackToKeywords(t *testing.T) {
	chatService, _, _ := newTestServices(&fakeCompleter{err: errors.New("timeout")})

	resp, err := chatService.HandleMessage(context.Background(), "conv-degraded", "dạo này công việc áp lực quá")
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.Nil(t, resp.Assessment)
	assert.NotEmpty(t, resp.Reply)
}

func TestHandleMessageTransitionAfterMinimumMessages(t *testing.T) {
	chatService, _, store := newTestServices(&fakeCompleter{
		reply: `{"severity": 0.95, "type": "depression_signs", "reasoning": "dấu hiệu trầm cảm rõ", "confidence": 0.9}`,
	})
	ctx := context.Background()

	// 持续时间线索确保 duration 因子拉满
	message := "tôi chán nản và mất ngủ suốt 2 tuần nay, mình cảm thấy vô dụng"

	for i := 0; i < 3; i++ {
		resp, err := chatService.HandleMessage(ctx, "conv-transition", message)
		require.NoError(t, err)
		assert.Nil(t, resp.Assessment, "回合 %d 不应转换", i+1)
		assert.False(t, resp.Verdict.ShouldTransition)
	}

	resp, err := chatService.HandleMessage(ctx, "conv-transition", message)
	require.NoError(t, err)

	require.NotNil(t, resp.Assessment)
	assert.Equal(t, model.AssessmentPHQ9, resp.Assessment.AssessmentType)
	assert.Equal(t, engine.ReasonThresholdMet, resp.Verdict.Reason)
	assert.NotEmpty(t, resp.Assessment.SessionID)
	assert.Equal(t, 9, resp.Assessment.QuestionCount)

	state, err := store.LoadConversation(ctx, "conv-transition")
	require.NoError(t, err)
	assert.Equal(t, model.PhaseAssessing, state.Phase)
	assert.Equal(t, 4, state.UserMessageCount)
}

func TestHandleMessageDuringAssessmentPhase(t *testing.T) {
	chatService, _, store := newTestServices(&fakeCompleter{
		reply: `{"severity": 0.2, "type": "normal_worry", "reasoning": "x", "confidence": 0.9}`,
	})
	ctx := context.Background()

	state := model.NewConversationState("conv-assessing")
	state.Phase = model.PhaseAssessing
	require.NoError(t, store.SaveConversation(ctx, state))

	resp, err := chatService.HandleMessage(ctx, "conv-assessing", "xin chào")
	require.NoError(t, err)

	assert.Equal(t, assessingReminder, resp.Reply)
	assert.Nil(t, resp.Assessment)

	// 提示消息不计入会话
	reloaded, err := store.LoadConversation(ctx, "conv-assessing")
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.UserMessageCount)
}

func TestSubmitClosesConversation(t *testing.T) {
	chatService, assessmentService, store := newTestServices(&fakeCompleter{err: errors.New("api down")})
	ctx := context.Background()

	// 通过危机路径进入量表阶段
	resp, err := chatService.HandleMessage(ctx, "conv-submit", "tôi muốn chết")
	require.NoError(t, err)
	require.NotNil(t, resp.Assessment)

	responses := map[string]int{
		"suicide_q1": 1, "suicide_q2": 1, "suicide_q3": 0, "suicide_q4": 1, "suicide_q5": 1,
	}
	result, err := assessmentService.Submit(ctx, &model.AssessmentSubmitRequest{
		SessionID:      resp.Assessment.SessionID,
		AssessmentType: model.AssessmentSuicideRisk,
		Responses:      responses,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalScore)
	assert.Equal(t, "low", result.SeverityBand)

	state, err := store.LoadConversation(ctx, "conv-submit")
	require.NoError(t, err)
	assert.Equal(t, model.PhaseClosed, state.Phase)

	// 关闭后的会话不再接受闲聊
	after, err := chatService.HandleMessage(ctx, "conv-submit", "xin chào")
	require.NoError(t, err)
	assert.Equal(t, assessingReminder, after.Reply)
}

func TestSubmitIncompleteKeepsSessionOpen(t *testing.T) {
	_, assessmentService, _ := newTestServices(&fakeCompleter{})
	ctx := context.Background()

	start, err := assessmentService.Start(ctx, "", model.AssessmentGAD7, "")
	require.NoError(t, err)

	_, err = assessmentService.Submit(ctx, &model.AssessmentSubmitRequest{
		SessionID:      start.SessionID,
		AssessmentType: model.AssessmentGAD7,
		Responses:      map[string]int{"gad7_q1": 1},
	})
	assert.ErrorIs(t, err, assessment.ErrIncompleteSession)

	// 计分失败后会话仍未完成，可以重交
	session, err := assessmentService.Submit(ctx, &model.AssessmentSubmitRequest{
		SessionID:      start.SessionID,
		AssessmentType: model.AssessmentGAD7,
		Responses: map[string]int{
			"gad7_q1": 1, "gad7_q2": 1, "gad7_q3": 1, "gad7_q4": 1,
			"gad7_q5": 1, "gad7_q6": 1, "gad7_q7": 1,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, session.TotalScore)
}

func TestSubmitTypeMismatchRejected(t *testing.T) {
	_, assessmentService, _ := newTestServices(&fakeCompleter{})
	ctx := context.Background()

	start, err := assessmentService.Start(ctx, "", model.AssessmentPHQ9, "")
	require.NoError(t, err)

	_, err = assessmentService.Submit(ctx, &model.AssessmentSubmitRequest{
		SessionID:      start.SessionID,
		AssessmentType: model.AssessmentGAD7,
		Responses:      map[string]int{},
	})
	assert.ErrorIs(t, err, assessment.ErrUnknownAssessment)
}

func TestSubmitUnknownSession(t *testing.T) {
	_, assessmentService, _ := newTestServices(&fakeCompleter{})

	_, err := assessmentService.Submit(context.Background(), &model.AssessmentSubmitRequest{
		SessionID:      "no-such-session",
		AssessmentType: model.AssessmentPHQ9,
		Responses:      map[string]int{},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
