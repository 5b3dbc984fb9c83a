package model

import "time"

// AssessmentType 量表类型
type AssessmentType string

const (
	AssessmentPHQ9        AssessmentType = "phq9"
	AssessmentGAD7        AssessmentType = "gad7"
	AssessmentDASS21      AssessmentType = "dass21_stress"
	AssessmentSuicideRisk AssessmentType = "suicide_risk"
)

// AssessmentTypes 全部合法量表类型
var AssessmentTypes = []AssessmentType{
	AssessmentPHQ9,
	AssessmentGAD7,
	AssessmentDASS21,
	AssessmentSuicideRisk,
}

// IsValid 判断量表类型是否合法
func (t AssessmentType) IsValid() bool {
	for _, known := range AssessmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RiskLevel 风险等级
type RiskLevel string

const (
	RiskMinimal  RiskLevel = "minimal"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// riskOrder 风险等级排序，用于取较高者
var riskOrder = map[RiskLevel]int{
	RiskMinimal:  0,
	RiskLow:      1,
	RiskModerate: 2,
	RiskHigh:     3,
}

// HigherRisk 返回两个风险等级中较高的一个
func HigherRisk(a, b RiskLevel) RiskLevel {
	if riskOrder[a] >= riskOrder[b] {
		return a
	}
	return b
}

// AssessmentSession 一次量表作答会话
type AssessmentSession struct {
	SessionID      string         `json:"sessionId"`
	ConversationID string         `json:"conversationId,omitempty"`
	Type           AssessmentType `json:"type"`
	Responses      map[string]int `json:"responses"` // questionId -> 0..3
	StartedAt      time.Time      `json:"startedAt"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
}

// Completed 判断会话是否已完成
func (s *AssessmentSession) Completed() bool {
	return s.CompletedAt != nil
}

// ScoringResult 量表评分结果
type ScoringResult struct {
	AssessmentType  AssessmentType `json:"assessmentType"`
	TotalScore      int            `json:"totalScore"`
	SeverityBand    string         `json:"severityBand"`
	RiskLevel       RiskLevel      `json:"riskLevel"`
	FlaggedItems    []string       `json:"flaggedItems"` // 超出风险阈值的高危题目 id
	Interpretation  string         `json:"interpretation"`
	Recommendations []string       `json:"recommendations"`
}
