package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Redis      RedisConfig      `yaml:"redis"`
	Together   TogetherConfig   `yaml:"together"`
	Transition TransitionConfig `yaml:"transition"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `yaml:"port"`
	Name string `yaml:"name"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// TogetherConfig Together AI 配置
type TogetherConfig struct {
	APIKey         string        `yaml:"apiKey"`
	Model          string        `yaml:"model"`
	MaxTokens      int           `yaml:"maxTokens"`
	Temperature    float64       `yaml:"temperature"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// TransitionConfig 转换决策配置
type TransitionConfig struct {
	SeverityWeight  float64 `yaml:"severityWeight"`  // AI 严重度权重
	DepthWeight     float64 `yaml:"depthWeight"`     // 对话深度权重
	DurationWeight  float64 `yaml:"durationWeight"`  // 持续时间权重
	Threshold       float64 `yaml:"threshold"`       // 加权分数阈值
	MinUserMessages int     `yaml:"minUserMessages"` // 触发检查的最少用户消息数
	MaxUserMessages int     `yaml:"maxUserMessages"` // 强制转换的消息上限
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// LoadConfig 加载配置文件
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验配置，非法配置直接拒绝（不做静默修正）
func (c *Config) Validate() error {
	return c.Transition.Validate()
}

// Validate 校验转换决策配置
func (t *TransitionConfig) Validate() error {
	weightSum := t.SeverityWeight + t.DepthWeight + t.DurationWeight
	if math.Abs(weightSum-1.0) > 0.01 {
		return fmt.Errorf("转换权重之和必须为 1.0, 当前: %.3f", weightSum)
	}
	if t.Threshold < 0.0 || t.Threshold > 1.0 {
		return fmt.Errorf("转换阈值必须在 [0,1] 范围内, 当前: %.3f", t.Threshold)
	}
	if t.MinUserMessages <= 0 {
		return fmt.Errorf("minUserMessages 必须大于 0, 当前: %d", t.MinUserMessages)
	}
	if t.MaxUserMessages < t.MinUserMessages {
		return fmt.Errorf("maxUserMessages(%d) 不能小于 minUserMessages(%d)", t.MaxUserMessages, t.MinUserMessages)
	}
	return nil
}

// DefaultTransitionConfig 默认转换决策配置
func DefaultTransitionConfig() TransitionConfig {
	return TransitionConfig{
		SeverityWeight:  0.5,
		DepthWeight:     0.3,
		DurationWeight:  0.2,
		Threshold:       0.65,
		MinUserMessages: 4,
		MaxUserMessages: 12,
	}
}
