package engine

import "github.com/mindcare/mindscreen-go/internal/model"

// followupTemplates 各分类的追问模板，按探问深度递进排列
var followupTemplates = map[model.Category][]string{
	model.CategoryNormalWorry: {
		"Bạn có thể chia sẻ cụ thể hơn về điều gì đang khiến bạn lo lắng không?",
		"Điều này đã ảnh hưởng đến cuộc sống hàng ngày của bạn như thế nào?",
		"Bạn đã thử cách nào để giải quyết vấn đề này chưa?",
	},
	model.CategoryNormalSadness: {
		"Cảm giác buồn này có kéo dài từ lúc nào không?",
		"Bạn có muốn chia sẻ về nguyên nhân khiến bạn cảm thấy buồn?",
		"Bạn có làm được những việc bình thường như trước đây không?",
	},
	model.CategorySituationalStress: {
		"Tình huống này đã diễn ra trong bao lâu rồi?",
		"Bạn cảm thấy stress này ảnh hưởng đến giấc ngủ hay ăn uống không?",
		"Có ai bạn có thể tâm sự về vấn đề này không?",
	},
	model.CategoryClinicalAnxiety: {
		"Cảm giác lo âu này có xuất hiện khi không có lý do rõ ràng không?",
		"Bạn có gặp các triệu chứng như tim đập nhanh, khó thở không?",
		"Điều này có làm bạn tránh né các hoạt động bình thường không?",
	},
	model.CategoryDepressionSigns: {
		"Bạn có mất hứng thú với những việc từng thích làm không?",
		"Giấc ngủ và cảm giác năng lượng của bạn có thay đổi không?",
		"Bạn có cảm thấy tuyệt vọng về tương lai không?",
	},
	model.CategoryChronicStress: {
		"Tình trạng này đã kéo dài bao lâu rồi?",
		"Bạn có thấy khó khăn trong việc thư giãn hay nghỉ ngơi không?",
		"Stress này có ảnh hưởng đến công việc hay học tập không?",
	},
}

// FollowupGenerator 追问生成器
// 按分类与当前对话深度选择模板，完全确定性，不调用外部模型。
type FollowupGenerator struct{}

// NewFollowupGenerator 创建追问生成器
func NewFollowupGenerator() *FollowupGenerator {
	return &FollowupGenerator{}
}

// Generate 生成追问
// 深度越高问题越探入；严重度高时加共情前缀。
func (g *FollowupGenerator) Generate(analysis model.EmotionalAnalysisResult, depth float64) string {
	questions, ok := followupTemplates[analysis.Category]
	if !ok {
		questions = followupTemplates[model.CategoryNormalWorry]
	}

	var question string
	switch {
	case depth < 0.3:
		question = questions[0]
	case depth < 0.6:
		question = questions[1]
	default:
		question = questions[2]
	}

	var prefix string
	switch {
	case analysis.Severity > 0.6:
		prefix = "Tôi hiểu đây là điều khó khăn với bạn. "
	case analysis.Severity > 0.3:
		prefix = "Cảm ơn bạn đã chia sẻ. "
	}

	return prefix + question
}
