package model

import "time"

// 消息角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// 对话阶段
const (
	PhaseChatting  = "chatting"
	PhaseAssessing = "assessing"
	PhaseClosed    = "closed"
)

// Category 情绪分类（AI 分析输出的 7 种类型）
type Category string

const (
	CategoryNormalWorry       Category = "normal_worry"
	CategoryNormalSadness     Category = "normal_sadness"
	CategorySituationalStress Category = "situational_stress"
	CategoryClinicalAnxiety   Category = "clinical_anxiety"
	CategoryDepressionSigns   Category = "depression_signs"
	CategoryChronicStress     Category = "chronic_stress"
	CategorySuicideRisk       Category = "suicide_risk"
)

// Categories 全部合法分类
var Categories = []Category{
	CategoryNormalWorry,
	CategoryNormalSadness,
	CategorySituationalStress,
	CategoryClinicalAnxiety,
	CategoryDepressionSigns,
	CategoryChronicStress,
	CategorySuicideRisk,
}

// IsValid 判断分类是否合法
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Message 对话消息，追加后不可变
type Message struct {
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationState 会话状态，每条入站消息只修改一次
type ConversationState struct {
	ConversationID   string               `json:"conversationId"`
	Messages         []Message            `json:"messages"`
	CategoryScores   map[Category]float64 `json:"categoryScores"` // 各分类累计信号分数（取历史最大值）
	Phase            string               `json:"phase"`          // chatting, assessing, closed
	UserMessageCount int                  `json:"userMessageCount"`
	LastClassifiedAt time.Time            `json:"lastClassifiedAt"`
	StartedAt        time.Time            `json:"startedAt"`
}

// NewConversationState 创建新会话状态
func NewConversationState(conversationID string) *ConversationState {
	return &ConversationState{
		ConversationID: conversationID,
		Messages:       []Message{},
		CategoryScores: make(map[Category]float64),
		Phase:          PhaseChatting,
		StartedAt:      time.Now(),
	}
}

// AppendMessage 追加消息并维护计数
func (s *ConversationState) AppendMessage(role, content string) {
	s.Messages = append(s.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	if role == RoleUser {
		s.UserMessageCount++
	}
}

// UserMessages 返回全部用户消息（按时间顺序）
func (s *ConversationState) UserMessages() []Message {
	var msgs []Message
	for _, msg := range s.Messages {
		if msg.Role == RoleUser {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// RecordCategoryScore 累计分类信号分数，保留历史最大值
func (s *ConversationState) RecordCategoryScore(category Category, severity float64) {
	if s.CategoryScores == nil {
		s.CategoryScores = make(map[Category]float64)
	}
	if severity > s.CategoryScores[category] {
		s.CategoryScores[category] = severity
	}
}

// EmotionalAnalysisResult 情绪分析结果，每次分类整体替换
type EmotionalAnalysisResult struct {
	Severity      float64  `json:"severity"`   // [0,1]
	Category      Category `json:"type"`       // 7 种分类之一
	Reasoning     string   `json:"reasoning"`  // AI 给出的简短解释
	Confidence    float64  `json:"confidence"` // [0,1]
	NeedsFollowup bool     `json:"needsFollowup"`
	Fallback      bool     `json:"fallback"` // 是否来自降级路径
}

// TransitionVerdict 转换判定结果，每轮重新计算
type TransitionVerdict struct {
	ShouldTransition bool           `json:"shouldTransition"`
	AssessmentType   AssessmentType `json:"assessmentType,omitempty"`
	WeightedScore    float64        `json:"weightedScore"`
	Reason           string         `json:"reason,omitempty"` // threshold_met, max_messages_reached, suicide_risk_detected
	Rationale        string         `json:"rationale"`
}
