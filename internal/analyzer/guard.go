package analyzer

import (
	"strings"

	"github.com/mindcare/mindscreen-go/internal/model"
)

// SuicideRiskGuard 自杀风险硬性检查
// 独立于 AI 分类器运行，不依赖任何网络调用，AI 失败时也必须生效。
type SuicideRiskGuard struct {
	crisisPhrases []string
	window        int // 扫描最近多少条用户消息
}

// NewSuicideRiskGuard 创建自杀风险检查器
func NewSuicideRiskGuard() *SuicideRiskGuard {
	return &SuicideRiskGuard{
		crisisPhrases: []string{
			"tự tử", "kết thúc cuộc đời", "không muốn sống", "tự làm hại",
			"muốn chết", "chết đi cho xong",
			"suicide", "kill myself", "end my life", "want to die",
			"hurt myself", "better off dead",
		},
		window: 3,
	}
}

// Detect 扫描最近的用户消息，命中危机用语即返回 true
func (g *SuicideRiskGuard) Detect(messages []model.Message) bool {
	var userMessages []model.Message
	for _, msg := range messages {
		if msg.Role == model.RoleUser {
			userMessages = append(userMessages, msg)
		}
	}

	start := 0
	if len(userMessages) > g.window {
		start = len(userMessages) - g.window
	}

	for _, msg := range userMessages[start:] {
		content := strings.ToLower(msg.Content)
		for _, phrase := range g.crisisPhrases {
			if strings.Contains(content, phrase) {
				return true
			}
		}
	}
	return false
}
