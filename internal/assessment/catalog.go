package assessment

import "github.com/mindcare/mindscreen-go/internal/model"

// Question 量表题目
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"` // 4 级选项文案，分值 0..3
	Category string   `json:"category"`
	RiskFlag bool     `json:"riskFlag,omitempty"` // 自杀/自伤高危题目
}

// ScoreRange 严重度分档区间（闭区间）
type ScoreRange struct {
	Band string `json:"band"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

// Questionnaire 量表定义（只读静态数据）
type Questionnaire struct {
	Type         model.AssessmentType `json:"type"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Instructions []string             `json:"instructions"`
	Disclaimer   string               `json:"disclaimer"`
	Questions    []Question           `json:"questions"`
	Ranges       []ScoreRange         `json:"ranges"`
}

// likertOptions PHQ-9 / GAD-7 通用 4 级选项
var likertOptions = []string{
	"Không bao giờ (0)",
	"Vài ngày (1)",
	"Hơn một nửa số ngày (2)",
	"Gần như mỗi ngày (3)",
}

// dassOptions DASS-21 4 级选项
var dassOptions = []string{
	"Không áp dụng cho tôi (0)",
	"Áp dụng một phần/thỉnh thoảng (1)",
	"Áp dụng đáng kể/thường xuyên (2)",
	"Áp dụng rất nhiều/hầu hết thời gian (3)",
}

// frequencyOptions 自杀风险评估 4 级频率选项
var frequencyOptions = []string{
	"Không bao giờ (0)",
	"Ít khi (1)",
	"Thỉnh thoảng (2)",
	"Thường xuyên (3)",
}

// Catalog 量表目录
var Catalog = map[model.AssessmentType]*Questionnaire{
	model.AssessmentPHQ9: {
		Type:        model.AssessmentPHQ9,
		Title:       "PHQ-9 - Bộ câu hỏi sàng lọc Trầm cảm",
		Description: "Bộ câu hỏi Patient Health Questionnaire-9 được sử dụng rộng rãi để sàng lọc và đánh giá mức độ nghiêm trọng của trầm cảm.",
		Instructions: []string{
			"Trong 2 tuần qua, bạn có thường xuyên gặp phải các vấn đề sau không?",
			"Thang điểm: 0 = Không bao giờ, 1 = Vài ngày, 2 = Hơn một nửa số ngày, 3 = Gần như mỗi ngày",
		},
		Disclaimer: "Đây là công cụ sàng lọc, không phải chẩn đoán y tế. Kết quả chỉ mang tính tham khảo.",
		Questions: []Question{
			{ID: "phq9_q1", Text: "Ít hứng thú hoặc không vui thích khi làm việc gì đó?", Options: likertOptions, Category: "interest"},
			{ID: "phq9_q2", Text: "Cảm thấy buồn, chán nản hoặc tuyệt vọng?", Options: likertOptions, Category: "mood"},
			{ID: "phq9_q3", Text: "Khó ngủ, ngủ không say, hoặc ngủ quá nhiều?", Options: likertOptions, Category: "sleep"},
			{ID: "phq9_q4", Text: "Cảm thấy mệt mỏi hoặc ít năng lượng?", Options: likertOptions, Category: "energy"},
			{ID: "phq9_q5", Text: "Ăn kém hoặc ăn quá nhiều?", Options: likertOptions, Category: "appetite"},
			{ID: "phq9_q6", Text: "Cảm thấy tệ về bản thân - hoặc cảm thấy mình là kẻ thất bại hoặc đã làm cho gia đình thất vọng?", Options: likertOptions, Category: "self_worth"},
			{ID: "phq9_q7", Text: "Khó tập trung vào việc gì đó, chẳng hạn như đọc báo hoặc xem tivi?", Options: likertOptions, Category: "concentration"},
			{ID: "phq9_q8", Text: "Di chuyển hoặc nói chuyện chậm chạp đến mức người khác có thể nhận ra? Hoặc ngược lại - bồn chồn hoặc bất an hơn bình thường?", Options: likertOptions, Category: "psychomotor"},
			{ID: "phq9_q9", Text: "Có ý nghĩ rằng tốt hơn là chết đi hoặc tự làm hại bản thân theo cách nào đó?", Options: likertOptions, Category: "suicide_risk", RiskFlag: true},
		},
		Ranges: []ScoreRange{
			{Band: "minimal", Min: 0, Max: 4},
			{Band: "mild", Min: 5, Max: 9},
			{Band: "moderate", Min: 10, Max: 14},
			{Band: "moderately_severe", Min: 15, Max: 19},
			{Band: "severe", Min: 20, Max: 27},
		},
	},

	model.AssessmentGAD7: {
		Type:        model.AssessmentGAD7,
		Title:       "GAD-7 - Bộ câu hỏi sàng lọc Lo âu",
		Description: "Bộ câu hỏi Generalized Anxiety Disorder-7 được sử dụng để sàng lọc và đánh giá mức độ nghiêm trọng của rối loạn lo âu.",
		Instructions: []string{
			"Trong 2 tuần qua, bạn có thường xuyên gặp phải các vấn đề sau không?",
			"Thang điểm: 0 = Không bao giờ, 1 = Vài ngày, 2 = Hơn một nửa số ngày, 3 = Gần như mỗi ngày",
		},
		Disclaimer: "Đây là công cụ sàng lọc, không phải chẩn đoán y tế.",
		Questions: []Question{
			{ID: "gad7_q1", Text: "Cảm thấy lo lắng, bồn chồn hoặc căng thẳng?", Options: likertOptions, Category: "nervousness"},
			{ID: "gad7_q2", Text: "Không thể ngừng hoặc kiểm soát việc lo lắng?", Options: likertOptions, Category: "worry_control"},
			{ID: "gad7_q3", Text: "Lo lắng quá nhiều về những điều khác nhau?", Options: likertOptions, Category: "excessive_worry"},
			{ID: "gad7_q4", Text: "Khó thư giãn?", Options: likertOptions, Category: "relaxation"},
			{ID: "gad7_q5", Text: "Bồn chồn đến mức khó ngồi yên?", Options: likertOptions, Category: "restlessness"},
			{ID: "gad7_q6", Text: "Dễ bực bội hoặc cáu kỉnh?", Options: likertOptions, Category: "irritability"},
			{ID: "gad7_q7", Text: "Cảm thấy sợ hãi như thể điều gì đó tệ hại sắp xảy ra?", Options: likertOptions, Category: "fear"},
		},
		Ranges: []ScoreRange{
			{Band: "minimal", Min: 0, Max: 4},
			{Band: "mild", Min: 5, Max: 9},
			{Band: "moderate", Min: 10, Max: 14},
			{Band: "severe", Min: 15, Max: 21},
		},
	},

	model.AssessmentDASS21: {
		Type:        model.AssessmentDASS21,
		Title:       "DASS-21 - Bộ câu hỏi sàng lọc Căng thẳng",
		Description: "Phần đánh giá căng thẳng của bộ câu hỏi Depression, Anxiety and Stress Scale-21.",
		Instructions: []string{
			"Vui lòng đọc từng câu và chọn số 0, 1, 2 hoặc 3 để cho biết mức độ mà câu đó áp dụng cho bạn trong tuần qua.",
		},
		Disclaimer: "Đây là công cụ sàng lọc, không phải chẩn đoán y tế.",
		Questions: []Question{
			{ID: "dass21_stress_q1", Text: "Tôi thấy khó thư giãn", Options: dassOptions, Category: "relaxation_difficulty"},
			{ID: "dass21_stress_q2", Text: "Tôi có xu hướng phản ứng thái quá với các tình huống", Options: dassOptions, Category: "overreaction"},
			{ID: "dass21_stress_q3", Text: "Tôi cảm thấy bực bội khi có điều gì đó bất ngờ xảy ra và làm gián đoạn những gì tôi đang làm", Options: dassOptions, Category: "disruption_upset"},
			{ID: "dass21_stress_q4", Text: "Tôi thấy mình dễ bị kích động", Options: dassOptions, Category: "agitation"},
			{ID: "dass21_stress_q5", Text: "Tôi thấy khó bình tĩnh lại sau khi có điều gì đó làm tôi khó chịu", Options: dassOptions, Category: "calming_difficulty"},
			{ID: "dass21_stress_q6", Text: "Tôi thấy khó chịu khi bị gián đoạn", Options: dassOptions, Category: "interruption_intolerance"},
			{ID: "dass21_stress_q7", Text: "Tôi cảm thấy căng thẳng", Options: dassOptions, Category: "stress_feeling"},
		},
		Ranges: []ScoreRange{
			{Band: "normal", Min: 0, Max: 7},
			{Band: "mild", Min: 8, Max: 9},
			{Band: "moderate", Min: 10, Max: 12},
			{Band: "severe", Min: 13, Max: 16},
			{Band: "extremely_severe", Min: 17, Max: 21},
		},
	},

	model.AssessmentSuicideRisk: {
		Type:        model.AssessmentSuicideRisk,
		Title:       "Đánh giá Nguy cơ Tự tử",
		Description: "Đánh giá sơ bộ các dấu hiệu nguy cơ tự tử và ý định tự làm hại bản thân.",
		Instructions: []string{
			"Những câu hỏi này rất quan trọng để đánh giá tình trạng an toàn của bạn.",
			"Vui lòng trả lời thật lòng. Tất cả thông tin sẽ được bảo mật.",
		},
		Disclaimer: "Nếu bạn có ý định tự làm hại bản thân, vui lòng gọi đường dây nóng 1800-0011 hoặc đến cơ sở y tế gần nhất.",
		Questions: []Question{
			{ID: "suicide_q1", Text: "Trong tháng qua, bạn có bao giờ nghĩ rằng tốt hơn là chết đi không?", Options: frequencyOptions, Category: "death_wish", RiskFlag: true},
			{ID: "suicide_q2", Text: "Trong tháng qua, bạn có bao giờ nghĩ đến việc tự làm hại bản thân không?", Options: frequencyOptions, Category: "self_harm", RiskFlag: true},
			{ID: "suicide_q3", Text: "Bạn có bao giờ lập kế hoạch cụ thể về cách tự làm hại bản thân không?", Options: []string{
				"Không bao giờ (0)",
				"Nghĩ đến nhưng chưa có kế hoạch (1)",
				"Có kế hoạch sơ bộ (2)",
				"Có kế hoạch chi tiết (3)",
			}, Category: "suicide_plan", RiskFlag: true},
			{ID: "suicide_q4", Text: "Bạn cảm thấy cuộc sống của mình có ý nghĩa như thế nào?", Options: []string{
				"Rất có ý nghĩa (0)",
				"Có ý nghĩa (1)",
				"Ít ý nghĩa (2)",
				"Không có ý nghĩa (3)",
			}, Category: "life_meaning"},
			{ID: "suicide_q5", Text: "Bạn có cảm thấy mình là gánh nặng cho người khác không?", Options: frequencyOptions, Category: "burden_feeling"},
		},
		Ranges: []ScoreRange{
			{Band: "minimal", Min: 0, Max: 3},
			{Band: "low", Min: 4, Max: 7},
			{Band: "moderate", Min: 8, Max: 11},
			{Band: "high", Min: 12, Max: 15},
		},
	},
}

// Get 按类型获取量表定义
func Get(assessmentType model.AssessmentType) (*Questionnaire, bool) {
	q, ok := Catalog[assessmentType]
	return q, ok
}
