package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mindcare/mindscreen-go/internal/client"
	"github.com/mindcare/mindscreen-go/internal/model"
	"github.com/stretchr/testify/assert"
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

func newTestClassifier(completer ChatCompleter) *EmotionalContextClassifier {
	return NewEmotionalContextClassifier(completer, 5*time.Second, zap.NewNop())
}

func TestClassifyParsesValidResponse(t *testing.T) {
	c := newTestClassifier(&fakeCompleter{
		reply: `{"severity": 0.75, "type": "depression_signs", "reasoning": "buồn chán kéo dài", "confidence": 0.85}`,
	})

	result := c.Classify(context.Background(), "tôi chán nản mấy tuần rồi", nil)

	assert.Equal(t, model.CategoryDepressionSigns, result.Category)
	assert.InDelta(t, 0.75, result.Severity, 0.001)
	assert.InDelta(t, 0.85, result.Confidence, 0.001)
	assert.Equal(t, "buồn chán kéo dài", result.Reasoning)
	assert.False(t, result.Fallback)
	assert.False(t, result.NeedsFollowup)
}

func TestClassifyExtractsJSONFromSurroundingText(t *testing.T) {
	c := newTestClassifier(&fakeCompleter{
		reply: "Đây là kết quả phân tích:\n{\"severity\": 0.4, \"type\": \"normal_worry\", \"reasoning\": \"lo thi cử\", \"confidence\": 0.9}\nHết.",
	})

	result := c.Classify(context.Background(), "em lo thi", nil)

	assert.Equal(t, model.CategoryNormalWorry, result.Category)
	assert.InDelta(t, 0.4, result.Severity, 0.001)
	assert.False(t, result.Fallback)
}

func TestClassifyClampsOutOfRangeScores(t *testing.T) {
	c := newTestClassifier(&fakeCompleter{
		reply: `{"severity": 1.8, "type": "clinical_anxiety", "reasoning": "x", "confidence": -0.2}`,
	})

	result := c.Classify(context.Background(), "tôi lo lắng", nil)

	assert.Equal(t, 1.0, result.Severity)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestClassifyUnknownCategoryFallsBackToNormalWorry(t *testing.T) {
	c := newTestClassifier(&fakeCompleter{
		reply: `{"severity": 0.3, "type": "something_else", "reasoning": "x", "confidence": 0.8}`,
	})

	result := c.Classify(context.Background(), "xin chào", nil)
	assert.Equal(t, model.CategoryNormalWorry, result.Category)
}

func TestClassifyClientErrorReturnsFallback(t *testing.T) {
	c := newTestClassifier(&fakeCompleter{err: errors.New("connection refused")})

	result := c.Classify(context.Background(), "tôi buồn", nil)

	assert.True(t, result.Fallback)
	assert.True(t, result.NeedsFollowup)
	assert.Equal(t, model.CategoryNormalWorry, result.Category)
	assert.Equal(t, 0.0, result.Severity)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestClassifyUnparseableResponseReturnsFallback(t *testing.T) {
	c := newTestClassifier(&fakeCompleter{reply: "xin lỗi, tôi không thể phân tích"})

	result := c.Classify(context.Background(), "tôi buồn", nil)
	assert.True(t, result.Fallback)
}

func TestClassifySuicideRiskForcedRules(t *testing.T) {
	c := newTestClassifier(&fakeCompleter{
		reply: `{"severity": 0.5, "type": "suicide_risk", "reasoning": "ý định tự hại", "confidence": 0.4}`,
	})

	result := c.Classify(context.Background(), "tôi không muốn sống", nil)

	// suicide_risk 强制高严重度且跳过追问
	assert.Equal(t, model.CategorySuicideRisk, result.Category)
	assert.GreaterOrEqual(t, result.Severity, 0.9)
	assert.False(t, result.NeedsFollowup)
}

func TestApplyBusinessRulesFollowupCondition(t *testing.T) {
	// 低置信且低严重度才需要追问
	low := applyBusinessRules(model.EmotionalAnalysisResult{Confidence: 0.5, Severity: 0.4})
	assert.True(t, low.NeedsFollowup)

	highConfidence := applyBusinessRules(model.EmotionalAnalysisResult{Confidence: 0.7, Severity: 0.4})
	assert.False(t, highConfidence.NeedsFollowup)

	highSeverity := applyBusinessRules(model.EmotionalAnalysisResult{Confidence: 0.5, Severity: 0.6})
	assert.False(t, highSeverity.NeedsFollowup)
}

func TestExtractJSONObject(t *testing.T) {
	jsonStr, err := extractJSONObject(`prefix {"a": {"b": "c}"}} suffix`)
	assert.NoError(t, err)
	assert.Equal(t, `{"a": {"b": "c}"}}`, jsonStr)

	_, err = extractJSONObject("không có json")
	assert.Error(t, err)

	_, err = extractJSONObject(`{"unclosed": true`)
	assert.Error(t, err)
}
