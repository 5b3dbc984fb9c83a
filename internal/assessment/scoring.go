package assessment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mindcare/mindscreen-go/internal/model"
	"go.uber.org/zap"
)

var (
	// ErrUnknownAssessment 未知量表类型
	ErrUnknownAssessment = errors.New("未知的量表类型")
	// ErrIncompleteSession 会话作答不完整
	ErrIncompleteSession = errors.New("量表作答不完整")
	// ErrScoreOutOfRange 单题分值超出范围
	ErrScoreOutOfRange = errors.New("题目分值超出范围")
)

// riskFlagThreshold 高危题目触发阈值（>=2 视为高风险信号）
const riskFlagThreshold = 2

// riskCutoffs 按总分推导风险等级的阈值，从高到低匹配
type riskCutoffs struct {
	high     int
	moderate int
	low      int
}

var riskCutoffTable = map[model.AssessmentType]riskCutoffs{
	model.AssessmentPHQ9:        {high: 20, moderate: 15, low: 5},
	model.AssessmentGAD7:        {high: 15, moderate: 10, low: 5},
	model.AssessmentDASS21:      {high: 17, moderate: 10, low: 8},
	model.AssessmentSuicideRisk: {high: 12, moderate: 8, low: 4},
}

// ScoringEngine 量表评分引擎
// 相同输入必然产生相同输出，缺答或越界一律报错而不是按 0 计。
type ScoringEngine struct {
	logger *zap.Logger
}

// NewScoringEngine 创建量表评分引擎
func NewScoringEngine(logger *zap.Logger) *ScoringEngine {
	return &ScoringEngine{logger: logger}
}

// Score 对一次完整作答计分
// 校验顺序：量表类型 -> 每题越界 -> 缺答，保证错误信息能定位到具体题目。
func (e *ScoringEngine) Score(session *model.AssessmentSession) (*model.ScoringResult, error) {
	questionnaire, ok := Get(session.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAssessment, session.Type)
	}

	totalScore := 0
	var flaggedItems []string
	for _, question := range questionnaire.Questions {
		response, answered := session.Responses[question.ID]
		if !answered {
			return nil, fmt.Errorf("%w: 缺少题目 %s 的回答", ErrIncompleteSession, question.ID)
		}
		if response < 0 || response > 3 {
			return nil, fmt.Errorf("%w: 题目 %s 的分值 %d 不在 0..3 内", ErrScoreOutOfRange, question.ID, response)
		}

		totalScore += response
		if question.RiskFlag && response >= riskFlagThreshold {
			flaggedItems = append(flaggedItems, question.ID)
		}
	}
	sort.Strings(flaggedItems)

	band := bandForScore(questionnaire, totalScore)
	riskLevel := riskForScore(session.Type, totalScore)
	// 高危题目命中时风险至少为 high，与总分推导结果取较高者
	if len(flaggedItems) > 0 {
		riskLevel = model.HigherRisk(riskLevel, model.RiskHigh)
	}

	result := &model.ScoringResult{
		AssessmentType:  session.Type,
		TotalScore:      totalScore,
		SeverityBand:    band,
		RiskLevel:       riskLevel,
		FlaggedItems:    flaggedItems,
		Interpretation:  interpretationFor(session.Type, band, totalScore),
		Recommendations: recommendationsFor(riskLevel),
	}

	e.logger.Info("量表评分完成",
		zap.String("sessionId", session.SessionID),
		zap.String("assessmentType", string(session.Type)),
		zap.Int("totalScore", totalScore),
		zap.String("severityBand", band),
		zap.String("riskLevel", string(riskLevel)),
		zap.Int("flaggedItems", len(flaggedItems)))

	return result, nil
}

// bandForScore 按总分查严重度分档
func bandForScore(questionnaire *Questionnaire, totalScore int) string {
	for _, r := range questionnaire.Ranges {
		if totalScore >= r.Min && totalScore <= r.Max {
			return r.Band
		}
	}
	// 区间覆盖了合法总分全域，走到这里说明静态数据有误
	return questionnaire.Ranges[len(questionnaire.Ranges)-1].Band
}

// riskForScore 按总分推导风险等级
func riskForScore(assessmentType model.AssessmentType, totalScore int) model.RiskLevel {
	cutoffs := riskCutoffTable[assessmentType]
	switch {
	case totalScore >= cutoffs.high:
		return model.RiskHigh
	case totalScore >= cutoffs.moderate:
		return model.RiskModerate
	case totalScore >= cutoffs.low:
		return model.RiskLow
	default:
		return model.RiskMinimal
	}
}

// interpretationFor 按量表与分档生成越南语结果说明
func interpretationFor(assessmentType model.AssessmentType, band string, totalScore int) string {
	name := interpretationNames[assessmentType]
	label, ok := bandLabels[band]
	if !ok {
		label = band
	}
	return fmt.Sprintf("Kết quả %s của bạn là %d điểm, ở mức %s.", name, totalScore, label)
}

var interpretationNames = map[model.AssessmentType]string{
	model.AssessmentPHQ9:        "sàng lọc trầm cảm (PHQ-9)",
	model.AssessmentGAD7:        "sàng lọc lo âu (GAD-7)",
	model.AssessmentDASS21:      "sàng lọc căng thẳng (DASS-21)",
	model.AssessmentSuicideRisk: "đánh giá nguy cơ tự tử",
}

var bandLabels = map[string]string{
	"minimal":           "tối thiểu",
	"normal":            "bình thường",
	"mild":              "nhẹ",
	"low":               "thấp",
	"moderate":          "trung bình",
	"moderately_severe": "trung bình nặng",
	"severe":            "nặng",
	"extremely_severe":  "rất nặng",
	"high":              "cao",
}

// recommendationsFor 按风险等级给出建议清单
func recommendationsFor(riskLevel model.RiskLevel) []string {
	switch riskLevel {
	case model.RiskHigh:
		return []string{
			"Vui lòng liên hệ ngay với chuyên gia sức khỏe tâm thần hoặc đường dây nóng 1800-0011.",
			"Không nên ở một mình, hãy chia sẻ với người thân hoặc bạn bè đáng tin cậy.",
			"Nếu có ý định tự làm hại bản thân, hãy đến cơ sở y tế gần nhất ngay lập tức.",
		}
	case model.RiskModerate:
		return []string{
			"Bạn nên cân nhắc gặp chuyên gia tâm lý để được đánh giá kỹ hơn.",
			"Duy trì các hoạt động thường ngày và kết nối với người thân.",
			"Theo dõi cảm xúc của mình và làm lại đánh giá sau 2 tuần.",
		}
	case model.RiskLow:
		return []string{
			"Các dấu hiệu hiện tại ở mức nhẹ, hãy chú ý chăm sóc bản thân.",
			"Tập thể dục đều đặn, ngủ đủ giấc và duy trì chế độ ăn lành mạnh.",
			"Nếu các triệu chứng kéo dài hoặc nặng hơn, hãy tìm sự hỗ trợ chuyên nghiệp.",
		}
	default:
		return []string{
			"Kết quả của bạn trong giới hạn bình thường.",
			"Tiếp tục duy trì lối sống lành mạnh và cân bằng.",
		}
	}
}
