package classifier

import (
	"testing"

	"github.com/mindcare/mindscreen-go/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifierCrisisKeyword(t *testing.T) {
	c := NewKeywordClassifier()

	result := c.Classify("dạo này tôi muốn chết")

	assert.Equal(t, model.CategorySuicideRisk, result.Category)
	assert.GreaterOrEqual(t, result.Severity, 0.9)
	assert.False(t, result.NeedsFollowup)
	assert.True(t, result.Fallback)
}

func TestKeywordClassifierSeverityOrdering(t *testing.T) {
	c := NewKeywordClassifier()

	// 同时命中多个分类时取最严重的一个
	result := c.Classify("tôi căng thẳng và tuyệt vọng")
	assert.Equal(t, model.CategoryDepressionSigns, result.Category)
	assert.InDelta(t, 0.7, result.Severity, 0.001)
}

func TestKeywordClassifierByCategory(t *testing.T) {
	c := NewKeywordClassifier()

	tests := []struct {
		text     string
		category model.Category
		severity float64
	}{
		{"I feel hopeless lately", model.CategoryDepressionSigns, 0.7},
		{"tôi hay hoảng loạn vô cớ", model.CategoryClinicalAnxiety, 0.7},
		{"tôi kiệt sức rồi", model.CategoryChronicStress, 0.65},
		{"công việc áp lực", model.CategorySituationalStress, 0.4},
		{"tôi thấy buồn", model.CategoryNormalSadness, 0.3},
		{"em hơi hồi hộp", model.CategoryNormalWorry, 0.25},
	}
	for _, tt := range tests {
		result := c.Classify(tt.text)
		assert.Equal(t, tt.category, result.Category, "text: %s", tt.text)
		assert.InDelta(t, tt.severity, result.Severity, 0.001, "text: %s", tt.text)
		assert.True(t, result.Fallback)
	}
}

func TestKeywordClassifierNoMatch(t *testing.T) {
	c := NewKeywordClassifier()

	result := c.Classify("xin chào, thời tiết đẹp quá")

	assert.Equal(t, model.CategoryNormalWorry, result.Category)
	assert.Equal(t, 0.0, result.Severity)
	assert.True(t, result.NeedsFollowup)
	assert.True(t, result.Fallback)
}
