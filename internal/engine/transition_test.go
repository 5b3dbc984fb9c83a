package engine

import (
	"testing"

	"github.com/mindcare/mindscreen-go/internal/config"
	"github.com/mindcare/mindscreen-go/internal/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestEngine() *TransitionEngine {
	return NewTransitionEngine(config.DefaultTransitionConfig(), zap.NewNop())
}

func stateWithUserMessages(count int) *model.ConversationState {
	state := model.NewConversationState("conv-1")
	for i := 0; i < count; i++ {
		state.AppendMessage(model.RoleUser, "tin nhắn")
	}
	return state
}

func analysisOf(category model.Category, severity float64) model.EmotionalAnalysisResult {
	return model.EmotionalAnalysisResult{Category: category, Severity: severity, Confidence: 0.8}
}

func TestDecideRequiresMinimumMessages(t *testing.T) {
	e := newTestEngine()

	verdict := e.Decide(analysisOf(model.CategoryDepressionSigns, 0.9), 0.9, 0.9, stateWithUserMessages(3))

	assert.False(t, verdict.ShouldTransition)
	assert.NotEmpty(t, verdict.Rationale)
}

func TestDecideSuicideRiskBypassesMinimum(t *testing.T) {
	e := newTestEngine()

	verdict := e.Decide(analysisOf(model.CategorySuicideRisk, 0.95), 0.0, 0.0, stateWithUserMessages(1))

	assert.True(t, verdict.ShouldTransition)
	assert.Equal(t, model.AssessmentSuicideRisk, verdict.AssessmentType)
	assert.Equal(t, ReasonSuicideRiskDetected, verdict.Reason)
}

func TestDecideBelowThreshold(t *testing.T) {
	e := newTestEngine()

	// 0.8*0.5 + 0.5*0.3 + 0.3*0.2 = 0.61 < 0.65
	verdict := e.Decide(analysisOf(model.CategoryDepressionSigns, 0.8), 0.5, 0.3, stateWithUserMessages(5))

	assert.False(t, verdict.ShouldTransition)
	assert.InDelta(t, 0.61, verdict.WeightedScore, 0.001)
	assert.Empty(t, verdict.Reason)
}

func TestDecideAboveThreshold(t *testing.T) {
	e := newTestEngine()

	// 0.8*0.5 + 0.75*0.3 + 0.3*0.2 = 0.685 >= 0.65
	verdict := e.Decide(analysisOf(model.CategoryDepressionSigns, 0.8), 0.75, 0.3, stateWithUserMessages(5))

	assert.True(t, verdict.ShouldTransition)
	assert.InDelta(t, 0.685, verdict.WeightedScore, 0.001)
	assert.Equal(t, model.AssessmentPHQ9, verdict.AssessmentType)
	assert.Equal(t, ReasonThresholdMet, verdict.Reason)
}

func TestDecideCategoryMapping(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		category   model.Category
		assessment model.AssessmentType
	}{
		{model.CategoryClinicalAnxiety, model.AssessmentGAD7},
		{model.CategoryNormalWorry, model.AssessmentGAD7},
		{model.CategoryDepressionSigns, model.AssessmentPHQ9},
		{model.CategoryNormalSadness, model.AssessmentPHQ9},
		{model.CategoryChronicStress, model.AssessmentDASS21},
		{model.CategorySituationalStress, model.AssessmentDASS21},
	}
	for _, tt := range tests {
		verdict := e.Decide(analysisOf(tt.category, 0.9), 0.9, 0.9, stateWithUserMessages(5))
		assert.True(t, verdict.ShouldTransition)
		assert.Equal(t, tt.assessment, verdict.AssessmentType, "category: %s", tt.category)
	}
}

func TestDecideFactorFallbackWithoutCategory(t *testing.T) {
	e := newTestEngine()

	// 分类缺失时按最高贡献因子兜底
	bySeverity := e.Decide(analysisOf("", 0.95), 0.5, 0.5, stateWithUserMessages(5))
	assert.True(t, bySeverity.ShouldTransition)
	assert.Equal(t, model.AssessmentPHQ9, bySeverity.AssessmentType)

	byDuration := e.Decide(analysisOf("", 0.7), 0.6, 0.9, stateWithUserMessages(5))
	assert.True(t, byDuration.ShouldTransition)
	assert.Equal(t, model.AssessmentDASS21, byDuration.AssessmentType)

	byDepth := e.Decide(analysisOf("", 0.6), 0.95, 0.5, stateWithUserMessages(5))
	assert.True(t, byDepth.ShouldTransition)
	assert.Equal(t, model.AssessmentGAD7, byDepth.AssessmentType)
}

func TestDecideMaxMessagesForcesTransition(t *testing.T) {
	e := newTestEngine()

	state := stateWithUserMessages(12)
	state.RecordCategoryScore(model.CategoryChronicStress, 0.6)
	state.RecordCategoryScore(model.CategoryNormalWorry, 0.3)

	// 低分也强制转换，量表取累计信号最强的分类
	verdict := e.Decide(analysisOf(model.CategoryNormalWorry, 0.1), 0.1, 0.0, state)

	assert.True(t, verdict.ShouldTransition)
	assert.Equal(t, ReasonMaxMessagesReached, verdict.Reason)
	assert.Equal(t, model.AssessmentDASS21, verdict.AssessmentType)
}

func TestDecideMaxMessagesTieBreakPrefersDepression(t *testing.T) {
	e := newTestEngine()

	state := stateWithUserMessages(12)
	state.RecordCategoryScore(model.CategoryClinicalAnxiety, 0.7)
	state.RecordCategoryScore(model.CategoryDepressionSigns, 0.7)

	verdict := e.Decide(analysisOf(model.CategoryNormalWorry, 0.1), 0.1, 0.0, state)

	assert.Equal(t, model.AssessmentPHQ9, verdict.AssessmentType)
}
