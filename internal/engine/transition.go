package engine

import (
	"fmt"

	"github.com/mindcare/mindscreen-go/internal/config"
	"github.com/mindcare/mindscreen-go/internal/model"
	"go.uber.org/zap"
)

// 转换原因，决定前端展示的过渡话术
const (
	ReasonThresholdMet        = "threshold_met"
	ReasonMaxMessagesReached  = "max_messages_reached"
	ReasonSuicideRiskDetected = "suicide_risk_detected"
)

// categoryAssessmentMapping 情绪分类到量表的映射
var categoryAssessmentMapping = map[model.Category]model.AssessmentType{
	model.CategoryClinicalAnxiety:   model.AssessmentGAD7,
	model.CategoryDepressionSigns:   model.AssessmentPHQ9,
	model.CategoryChronicStress:     model.AssessmentDASS21,
	model.CategorySuicideRisk:       model.AssessmentSuicideRisk,
	model.CategoryNormalWorry:       model.AssessmentGAD7,
	model.CategoryNormalSadness:     model.AssessmentPHQ9,
	model.CategorySituationalStress: model.AssessmentDASS21,
}

// TransitionEngine 转换决策引擎
// 融合 AI 严重度、对话深度、持续时间三个因子做加权判定；
// suicide_risk 分类直接短路，不受消息下限和阈值约束。
type TransitionEngine struct {
	cfg    config.TransitionConfig
	logger *zap.Logger
}

// NewTransitionEngine 创建转换决策引擎
// 配置必须已通过 Validate，这里不再重复校验。
func NewTransitionEngine(cfg config.TransitionConfig, logger *zap.Logger) *TransitionEngine {
	return &TransitionEngine{cfg: cfg, logger: logger}
}

// Decide 对当前回合做转换判定
// 判定顺序：自杀风险短路 -> 消息下限 -> 消息上限强制转换 -> 加权阈值。
func (e *TransitionEngine) Decide(analysis model.EmotionalAnalysisResult, depth, duration float64, state *model.ConversationState) model.TransitionVerdict {
	if analysis.Category == model.CategorySuicideRisk {
		verdict := model.TransitionVerdict{
			ShouldTransition: true,
			AssessmentType:   model.AssessmentSuicideRisk,
			WeightedScore:    e.weightedScore(analysis.Severity, depth, duration),
			Reason:           ReasonSuicideRiskDetected,
			Rationale:        "Phát hiện dấu hiệu nguy cơ tự tử, chuyển sang đánh giá an toàn ngay lập tức.",
		}
		e.logVerdict(verdict, analysis, depth, duration, state)
		return verdict
	}

	if state.UserMessageCount < e.cfg.MinUserMessages {
		return model.TransitionVerdict{
			ShouldTransition: false,
			WeightedScore:    e.weightedScore(analysis.Severity, depth, duration),
			Rationale: fmt.Sprintf("Cần thêm %d tin nhắn nữa trước khi đánh giá.",
				e.cfg.MinUserMessages-state.UserMessageCount),
		}
	}

	weighted := e.weightedScore(analysis.Severity, depth, duration)

	if state.UserMessageCount >= e.cfg.MaxUserMessages {
		assessmentType := e.dominantAccumulated(state, analysis)
		verdict := model.TransitionVerdict{
			ShouldTransition: true,
			AssessmentType:   assessmentType,
			WeightedScore:    weighted,
			Reason:           ReasonMaxMessagesReached,
			Rationale: fmt.Sprintf("Đã đạt giới hạn %d tin nhắn, chuyển sang đánh giá dựa trên tín hiệu tích lũy mạnh nhất.",
				e.cfg.MaxUserMessages),
		}
		e.logVerdict(verdict, analysis, depth, duration, state)
		return verdict
	}

	rationale := e.buildRationale(analysis, depth, duration, weighted)

	if weighted < e.cfg.Threshold {
		return model.TransitionVerdict{
			ShouldTransition: false,
			WeightedScore:    weighted,
			Rationale:        rationale,
		}
	}

	verdict := model.TransitionVerdict{
		ShouldTransition: true,
		AssessmentType:   e.assessmentFor(analysis, depth, duration),
		WeightedScore:    weighted,
		Reason:           ReasonThresholdMet,
		Rationale:        rationale,
	}
	e.logVerdict(verdict, analysis, depth, duration, state)
	return verdict
}

// weightedScore 三因子加权分数
func (e *TransitionEngine) weightedScore(severity, depth, duration float64) float64 {
	return severity*e.cfg.SeverityWeight + depth*e.cfg.DepthWeight + duration*e.cfg.DurationWeight
}

// assessmentFor 选择量表：优先按分类映射，分类缺失时按最高贡献因子兜底
func (e *TransitionEngine) assessmentFor(analysis model.EmotionalAnalysisResult, depth, duration float64) model.AssessmentType {
	if assessmentType, ok := categoryAssessmentMapping[analysis.Category]; ok {
		return assessmentType
	}

	switch {
	case analysis.Severity >= depth && analysis.Severity >= duration:
		return model.AssessmentPHQ9
	case duration >= depth:
		return model.AssessmentDASS21
	default:
		return model.AssessmentGAD7
	}
}

// dominantAccumulated 在累计分类信号中取分数最高者对应的量表
// 平分时偏向 depression_signs；没有任何信号时退回当前分类。
func (e *TransitionEngine) dominantAccumulated(state *model.ConversationState, analysis model.EmotionalAnalysisResult) model.AssessmentType {
	var best model.Category
	bestScore := -1.0
	for _, category := range model.Categories {
		score, ok := state.CategoryScores[category]
		if !ok {
			continue
		}
		if score > bestScore || (score == bestScore && category == model.CategoryDepressionSigns) {
			best = category
			bestScore = score
		}
	}

	if bestScore < 0 {
		return e.assessmentFor(analysis, 0, 0)
	}
	return categoryAssessmentMapping[best]
}

// buildRationale 生成可读的判定说明，包含各因子贡献与阈值差距
func (e *TransitionEngine) buildRationale(analysis model.EmotionalAnalysisResult, depth, duration, weighted float64) string {
	margin := weighted - e.cfg.Threshold
	if weighted >= e.cfg.Threshold {
		return fmt.Sprintf(
			"Quyết định chuyển sang đánh giá: AI phát hiện dấu hiệu %s (AI=%.2f, Depth=%.2f, Duration=%.2f, tổng=%.2f, ngưỡng=%.2f, chênh lệch=%+.2f).",
			analysis.Category, analysis.Severity*e.cfg.SeverityWeight, depth*e.cfg.DepthWeight,
			duration*e.cfg.DurationWeight, weighted, e.cfg.Threshold, margin)
	}
	return fmt.Sprintf(
		"Tiếp tục trò chuyện: chưa đủ dấu hiệu để đánh giá (AI=%.2f, Depth=%.2f, Duration=%.2f, tổng=%.2f, ngưỡng=%.2f, chênh lệch=%+.2f).",
		analysis.Severity*e.cfg.SeverityWeight, depth*e.cfg.DepthWeight,
		duration*e.cfg.DurationWeight, weighted, e.cfg.Threshold, margin)
}

func (e *TransitionEngine) logVerdict(verdict model.TransitionVerdict, analysis model.EmotionalAnalysisResult, depth, duration float64, state *model.ConversationState) {
	e.logger.Info("转换判定完成",
		zap.String("conversationId", state.ConversationID),
		zap.Bool("shouldTransition", verdict.ShouldTransition),
		zap.String("assessmentType", string(verdict.AssessmentType)),
		zap.String("reason", verdict.Reason),
		zap.Float64("aiSeverity", analysis.Severity),
		zap.Float64("depth", depth),
		zap.Float64("duration", duration),
		zap.Float64("weightedScore", verdict.WeightedScore),
		zap.Int("userMessageCount", state.UserMessageCount))
}
