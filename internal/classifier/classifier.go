package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mindcare/mindscreen-go/internal/client"
	"github.com/mindcare/mindscreen-go/internal/model"
	"go.uber.org/zap"
)

// ChatCompleter 聊天补全接口，便于注入测试替身
type ChatCompleter interface {
	Chat(ctx context.Context, messages []client.Message) (string, error)
}

// EmotionalContextClassifier 情绪上下文分类器
// 调用外部模型给出分类结果；任何失败都不抛出，返回带降级标记的默认结果。
type EmotionalContextClassifier struct {
	llmClient ChatCompleter
	timeout   time.Duration
	logger    *zap.Logger
}

// NewEmotionalContextClassifier 创建情绪上下文分类器
func NewEmotionalContextClassifier(llmClient ChatCompleter, timeout time.Duration, logger *zap.Logger) *EmotionalContextClassifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &EmotionalContextClassifier{
		llmClient: llmClient,
		timeout:   timeout,
		logger:    logger,
	}
}

// rawAnalysis 模型输出的原始 JSON 结构
type rawAnalysis struct {
	Severity   float64 `json:"severity"`
	Type       string  `json:"type"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// Classify 分类当前消息与最近历史
// 超时、网络错误或解析失败时返回降级默认结果，由调用方决定是否再走关键词兜底。
func (c *EmotionalContextClassifier) Classify(ctx context.Context, current string, history []model.Message) model.EmotionalAnalysisResult {
	prompt := c.buildPrompt(current, history)

	response, err := client.CallWithTimeout(ctx, c.timeout, func(callCtx context.Context) (string, error) {
		return c.llmClient.Chat(callCtx, []client.Message{
			{Role: "user", Content: prompt},
		})
	})
	if err != nil {
		c.logger.Warn("AI 情绪分类失败，进入降级模式", zap.Error(err))
		return fallbackResult("fallback")
	}

	result, err := c.parseResponse(response)
	if err != nil {
		c.logger.Warn("AI 响应解析失败，进入降级模式",
			zap.Error(err),
			zap.String("response", response))
		return fallbackResult("fallback")
	}

	return applyBusinessRules(result)
}

// buildPrompt 构建分类提示词：分类定义 + 严重度分档 + 最近 3 条用户消息
func (c *EmotionalContextClassifier) buildPrompt(current string, history []model.Message) string {
	var userMessages []string
	for _, msg := range history {
		if msg.Role == model.RoleUser {
			userMessages = append(userMessages, msg.Content)
		}
	}
	if len(userMessages) > 3 {
		userMessages = userMessages[len(userMessages)-3:]
	}

	var recentHistory strings.Builder
	for _, content := range userMessages {
		recentHistory.WriteString("- " + content + "\n")
	}

	return fmt.Sprintf(`Bạn là chuyên gia tâm lý, hãy phân tích tin nhắn sau để phân biệt giữa cảm xúc bình thường và dấu hiệu bệnh lý.

LỊCH SỬ CUỘC TRÒ CHUYỆN:
%s
TIN NHẮN HIỆN TẠI: "%s"

Hãy phân tích và trả lời theo format JSON chính xác sau:
{
    "severity": [số từ 0.0 đến 1.0],
    "type": "[một trong: normal_worry, normal_sadness, situational_stress, clinical_anxiety, depression_signs, chronic_stress, suicide_risk]",
    "reasoning": "[giải thích ngắn gọn]",
    "confidence": [số từ 0.0 đến 1.0]
}

HƯỚNG DẪN PHÂN LOẠI:
- normal_worry: Lo lắng về việc cụ thể (thi cử, công việc, tương lai)
- normal_sadness: Buồn do sự kiện cụ thể (chia tay, thất bại)
- situational_stress: Stress có nguyên nhân rõ ràng và tạm thời
- clinical_anxiety: Lo âu không có lý do rõ ràng, kéo dài, ảnh hưởng cuộc sống
- depression_signs: Buồn chán kéo dài, mất hứng thú, cảm giác vô vọng
- chronic_stress: Stress kéo dài nhiều tuần/tháng
- suicide_risk: Có ý định tự hại bản thân

SEVERITY SCORE:
- 0.0-0.3: Cảm xúc bình thường, tạm thời
- 0.4-0.6: Cần quan tâm, theo dõi
- 0.7-0.9: Có dấu hiệu bệnh lý, cần đánh giá
- 0.9-1.0: Nguy hiểm, cần can thiệp ngay

CHỈ TRẢ LỜI JSON, KHÔNG GIẢI THÍCH THÊM.`, recentHistory.String(), current)
}

// parseResponse 从自由文本中提取第一个完整 JSON 对象并校验
func (c *EmotionalContextClassifier) parseResponse(response string) (model.EmotionalAnalysisResult, error) {
	jsonStr, err := extractJSONObject(response)
	if err != nil {
		return model.EmotionalAnalysisResult{}, err
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return model.EmotionalAnalysisResult{}, fmt.Errorf("JSON 解析失败: %w", err)
	}

	category := model.Category(raw.Type)
	if !category.IsValid() {
		category = model.CategoryNormalWorry
	}

	return model.EmotionalAnalysisResult{
		Severity:   clamp01(raw.Severity),
		Category:   category,
		Reasoning:  raw.Reasoning,
		Confidence: clamp01(raw.Confidence),
	}, nil
}

// applyBusinessRules 在分类结果上叠加业务规则
// 低置信低严重度时标记需要追问；suicide_risk 强制高严重度且不再追问。
func applyBusinessRules(result model.EmotionalAnalysisResult) model.EmotionalAnalysisResult {
	result.NeedsFollowup = result.Confidence < 0.6 && result.Severity < 0.5

	if result.Category == model.CategorySuicideRisk {
		result.Severity = max(result.Severity, 0.9)
		result.NeedsFollowup = false
	}
	return result
}

// fallbackResult 降级默认结果
func fallbackResult(reasoning string) model.EmotionalAnalysisResult {
	return model.EmotionalAnalysisResult{
		Severity:      0.0,
		Category:      model.CategoryNormalWorry,
		Reasoning:     reasoning,
		Confidence:    0.0,
		NeedsFollowup: true,
		Fallback:      true,
	}
}

// extractJSONObject 提取文本中第一个配对完整的 JSON 对象（容忍前后夹杂说明文字）
func extractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", fmt.Errorf("响应中没有 JSON 对象")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("JSON 对象不完整")
}

func clamp01(v float64) float64 {
	return max(0.0, min(v, 1.0))
}
