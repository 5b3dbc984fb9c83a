package analyzer

import (
	"strings"

	"github.com/mindcare/mindscreen-go/internal/model"
)

// ConversationDepthAnalyzer 评估对话中的个人化与情绪化表达程度
type ConversationDepthAnalyzer struct {
	pronouns             []string
	emotionalExpressions []string
	vulnerabilityMarkers []string
}

// NewConversationDepthAnalyzer 创建对话深度分析器
func NewConversationDepthAnalyzer() *ConversationDepthAnalyzer {
	return &ConversationDepthAnalyzer{
		pronouns: []string{
			"tôi", "mình", "em", "con", "i", "me", "my", "myself",
		},
		emotionalExpressions: []string{
			"cảm thấy", "suy nghĩ", "lo lắng", "buồn", "vui", "giận",
			"feel", "think", "worry", "sad", "happy", "angry",
		},
		vulnerabilityMarkers: []string{
			"khó khăn", "đau khổ", "không biết", "bối rối", "hoang mang",
			"difficult", "struggling", "confused", "lost", "helpless",
		},
	}
}

// MessageDepth 评估单条消息的深度分数 [0,1]
// 加权项：长度 30%（以 100 字符为基准）、人称代词 25%（基准 3 次）、
// 情绪词 25%（基准 2 次）、脆弱性表达 20%（基准 2 次）。
func (a *ConversationDepthAnalyzer) MessageDepth(message string) float64 {
	if strings.TrimSpace(message) == "" {
		return 0.0
	}

	lower := strings.ToLower(message)

	lengthScore := min(float64(len(message))/100.0, 1.0)
	pronounScore := min(float64(countContained(lower, a.pronouns))/3.0, 1.0)
	emotionScore := min(float64(countContained(lower, a.emotionalExpressions))/2.0, 1.0)
	vulnerabilityScore := min(float64(countContained(lower, a.vulnerabilityMarkers))/2.0, 1.0)

	return lengthScore*0.3 + pronounScore*0.25 + emotionScore*0.25 + vulnerabilityScore*0.2
}

// ConversationDepth 计算整个会话的深度分数 [0,1]
// 各用户消息按新近程度线性加权（最新消息权重最高）；
// 用户消息少于 3 条时信号不足，整体打五折。
func (a *ConversationDepthAnalyzer) ConversationDepth(messages []model.Message) float64 {
	var userMessages []model.Message
	for _, msg := range messages {
		if msg.Role == model.RoleUser {
			userMessages = append(userMessages, msg)
		}
	}
	if len(userMessages) == 0 {
		return 0.0
	}

	weightedSum := 0.0
	totalWeight := 0.0
	for i, msg := range userMessages {
		weight := 1.0 + float64(i)*0.3
		weightedSum += a.MessageDepth(msg.Content) * weight
		totalWeight += weight
	}
	depth := weightedSum / totalWeight

	if len(userMessages) < 3 {
		depth *= 0.5
	}
	return max(0.0, min(depth, 1.0))
}

// countContained 统计列表中出现在文本里的词条数量
func countContained(text string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			count++
		}
	}
	return count
}
