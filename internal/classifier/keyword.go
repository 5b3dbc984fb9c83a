package classifier

import (
	"strings"

	"github.com/mindcare/mindscreen-go/internal/model"
)

// categoryKeywords 某一分类的关键词表及命中时的严重度
type categoryKeywords struct {
	category model.Category
	severity float64
	keywords []string
}

// KeywordClassifier 关键词兜底分类器
// AI 调用失败时使用，输出形状与 AI 分类完全一致。
type KeywordClassifier struct {
	// 按严重度从高到低排列，命中即取最严重的分类
	table []categoryKeywords
}

// NewKeywordClassifier 创建关键词兜底分类器
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		table: []categoryKeywords{
			{
				category: model.CategorySuicideRisk,
				severity: 0.95,
				keywords: []string{
					"tự tử", "kết thúc cuộc đời", "không muốn sống", "tự làm hại", "muốn chết",
					"suicide", "kill myself", "end my life", "want to die", "hurt myself",
				},
			},
			{
				category: model.CategoryDepressionSigns,
				severity: 0.7,
				keywords: []string{
					"tuyệt vọng", "vô vọng", "trầm cảm", "mất hứng thú", "mất động lực", "vô giá trị",
					"hopeless", "depressed", "no interest", "worthless", "unmotivated",
				},
			},
			{
				category: model.CategoryClinicalAnxiety,
				severity: 0.7,
				keywords: []string{
					"hoảng loạn", "sợ hãi", "bồn chồn", "bất an", "tim đập nhanh",
					"panic", "restless", "uneasy", "racing thoughts",
				},
			},
			{
				category: model.CategoryChronicStress,
				severity: 0.65,
				keywords: []string{
					"quá tải", "kiệt sức", "không kiểm soát",
					"overwhelmed", "burned out", "out of control",
				},
			},
			{
				category: model.CategorySituationalStress,
				severity: 0.4,
				keywords: []string{
					"căng thẳng", "áp lực",
					"stress", "pressure",
				},
			},
			{
				category: model.CategoryNormalSadness,
				severity: 0.3,
				keywords: []string{
					"buồn", "chán nản", "thất vọng",
					"sad", "down", "disappointed",
				},
			},
			{
				category: model.CategoryNormalWorry,
				severity: 0.25,
				keywords: []string{
					"lo lắng", "hồi hộp",
					"worried", "nervous", "anxious",
				},
			},
		},
	}
}

// Classify 对文本做关键词分类，返回命中的最高严重度分类
// 什么都没命中时平滑退化为 normal_worry/0。
func (c *KeywordClassifier) Classify(text string) model.EmotionalAnalysisResult {
	lower := strings.ToLower(text)

	for _, entry := range c.table {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				result := model.EmotionalAnalysisResult{
					Severity:   entry.severity,
					Category:   entry.category,
					Reasoning:  "phát hiện từ khóa: " + keyword,
					Confidence: 0.5,
					Fallback:   true,
				}
				return applyBusinessRules(result)
			}
		}
	}

	return fallbackResult("không phát hiện từ khóa nào")
}
