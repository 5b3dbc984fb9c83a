package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTransitionConfigValid(t *testing.T) {
	cfg := DefaultTransitionConfig()
	assert.NoError(t, cfg.Validate())
}

func TestTransitionConfigWeightSum(t *testing.T) {
	cfg := DefaultTransitionConfig()
	cfg.SeverityWeight = 0.6 // 和变成 1.1
	assert.Error(t, cfg.Validate())
}

func TestTransitionConfigThresholdRange(t *testing.T) {
	cfg := DefaultTransitionConfig()
	cfg.Threshold = 1.2
	assert.Error(t, cfg.Validate())

	cfg = DefaultTransitionConfig()
	cfg.Threshold = -0.1
	assert.Error(t, cfg.Validate())
}

func TestTransitionConfigMessageLimits(t *testing.T) {
	cfg := DefaultTransitionConfig()
	cfg.MinUserMessages = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultTransitionConfig()
	cfg.MaxUserMessages = cfg.MinUserMessages - 1
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	content := `
server:
  port: 9090
  name: screening-test
redis:
  host: localhost
  port: 6379
  db: 1
together:
  apiKey: test-key
  model: meta-llama/Llama-3.3-70B-Instruct-Turbo-Free
  maxTokens: 200
  temperature: 0.3
  requestTimeout: 10s
transition:
  severityWeight: 0.5
  depthWeight: 0.3
  durationWeight: 0.2
  threshold: 0.65
  minUserMessages: 4
  maxUserMessages: 12
log:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "screening-test", cfg.Server.Name)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 10*time.Second, cfg.Together.RequestTimeout)
	assert.Equal(t, 0.65, cfg.Transition.Threshold)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigRejectsInvalidTransition(t *testing.T) {
	content := `
transition:
  severityWeight: 0.9
  depthWeight: 0.3
  durationWeight: 0.2
  threshold: 0.65
  minUserMessages: 4
  maxUserMessages: 12
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}
