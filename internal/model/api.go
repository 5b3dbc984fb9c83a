package model

// ChatRequest 对话消息请求
type ChatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message" binding:"required"`
}

// ChatResponse 对话消息响应
type ChatResponse struct {
	ConversationID string            `json:"conversationId"`
	Reply          string            `json:"reply,omitempty"` // 未转换时的追问
	Verdict        TransitionVerdict `json:"verdict"`
	Assessment     *AssessmentStart  `json:"assessment,omitempty"` // 转换时返回的量表信息
	Degraded       bool              `json:"degraded"`             // AI 分类是否走了降级路径
}

// AssessmentStart 量表启动信息
type AssessmentStart struct {
	SessionID      string         `json:"sessionId"`
	AssessmentType AssessmentType `json:"assessmentType"`
	Announcement   string         `json:"announcement"` // 转换提示语
	FirstQuestion  string         `json:"firstQuestion"`
	QuestionCount  int            `json:"questionCount"`
}

// AssessmentStartRequest 手动启动量表请求
type AssessmentStartRequest struct {
	AssessmentType AssessmentType `json:"assessmentType" binding:"required"`
	ConversationID string         `json:"conversationId"`
}

// AssessmentSubmitRequest 量表提交请求
type AssessmentSubmitRequest struct {
	SessionID      string         `json:"sessionId" binding:"required"`
	AssessmentType AssessmentType `json:"assessmentType" binding:"required"`
	Responses      map[string]int `json:"responses" binding:"required"`
}
