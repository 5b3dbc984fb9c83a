package analyzer

import (
	"regexp"
	"strings"
)

// temporalPattern 时间线索模式及其对应的严重度
type temporalPattern struct {
	re       *regexp.Regexp
	severity float64
}

// TemporalIndicatorExtractor 从对话文本中提取持续时间线索
type TemporalIndicatorExtractor struct {
	patterns []temporalPattern
}

// NewTemporalIndicatorExtractor 创建持续时间线索提取器
func NewTemporalIndicatorExtractor() *TemporalIndicatorExtractor {
	build := func(expr string, severity float64) temporalPattern {
		return temporalPattern{re: regexp.MustCompile(expr), severity: severity}
	}

	return &TemporalIndicatorExtractor{
		patterns: []temporalPattern{
			// 短期
			build(`(hôm nay|hôm qua|sáng nay|chiều nay|tối nay)`, 0.1),
			build(`\b(today|yesterday|this morning|this afternoon|tonight)\b`, 0.1),

			// 中期
			build(`(tuần này|tuần trước|mấy ngày|vài ngày)`, 0.4),
			build(`\b(this week|last week|few days|several days)\b`, 0.4),
			build(`(\d+\s*ngày)`, 0.3),

			// 长期
			build(`(2\s*tuần|hai tuần|mấy tuần)`, 0.8),
			build(`(tháng này|tháng trước|mấy tháng)`, 0.7),
			build(`\b(2\s*weeks|two weeks|few weeks|few months)\b`, 0.8),
			build(`(\d+\s*tháng|\d+\s*months)`, 0.8),

			// 持续性
			build(`(suốt|liên tục|mãi mãi|từ lúc|kể từ)`, 0.9),
			build(`\b(constantly|continuously|always|since|ever since)\b`, 0.9),
		},
	}
}

// Extract 提取文本中全部不重复的时间线索
func (e *TemporalIndicatorExtractor) Extract(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var indicators []string

	for _, p := range e.patterns {
		for _, match := range p.re.FindAllString(lower, -1) {
			if !seen[match] {
				seen[match] = true
				indicators = append(indicators, match)
			}
		}
	}
	return indicators
}

// Score 将文本转为持续时间严重度分数 [0,1]
// 取匹配到的最高严重度；匹配到多个不同线索时上调 20%（封顶 1.0），
// 因为反复出现的时间表述说明症状在持续。
func (e *TemporalIndicatorExtractor) Score(text string) float64 {
	indicators := e.Extract(text)
	if len(indicators) == 0 {
		return 0.0
	}

	joined := strings.Join(indicators, " ")
	maxScore := 0.0
	for _, p := range e.patterns {
		if p.re.MatchString(joined) && p.severity > maxScore {
			maxScore = p.severity
		}
	}

	if len(indicators) > 1 {
		maxScore = min(maxScore*1.2, 1.0)
	}
	return maxScore
}
