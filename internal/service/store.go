package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mindcare/mindscreen-go/internal/model"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound 会话不存在
var ErrNotFound = errors.New("会话不存在")

// stateTTL 会话状态过期时间
const stateTTL = 24 * time.Hour

// Store 会话与量表作答的持久化接口
type Store interface {
	LoadConversation(ctx context.Context, conversationID string) (*model.ConversationState, error)
	SaveConversation(ctx context.Context, state *model.ConversationState) error
	LoadSession(ctx context.Context, sessionID string) (*model.AssessmentSession, error)
	SaveSession(ctx context.Context, session *model.AssessmentSession) error
}

// RedisStore 基于 Redis 的会话存储，值为 JSON，写入即续期
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func conversationKey(conversationID string) string {
	return "screening:conversation:" + conversationID
}

func sessionKey(sessionID string) string {
	return "screening:assessment:" + sessionID
}

// LoadConversation 加载会话状态
func (s *RedisStore) LoadConversation(ctx context.Context, conversationID string) (*model.ConversationState, error) {
	data, err := s.client.Get(ctx, conversationKey(conversationID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取会话状态失败: %w", err)
	}

	var state model.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("解析会话状态失败: %w", err)
	}
	return &state, nil
}

// SaveConversation 保存会话状态
func (s *RedisStore) SaveConversation(ctx context.Context, state *model.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("序列化会话状态失败: %w", err)
	}
	if err := s.client.Set(ctx, conversationKey(state.ConversationID), data, stateTTL).Err(); err != nil {
		return fmt.Errorf("保存会话状态失败: %w", err)
	}
	return nil
}

// LoadSession 加载量表作答会话
func (s *RedisStore) LoadSession(ctx context.Context, sessionID string) (*model.AssessmentSession, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取量表会话失败: %w", err)
	}

	var session model.AssessmentSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("解析量表会话失败: %w", err)
	}
	return &session, nil
}

// SaveSession 保存量表作答会话
func (s *RedisStore) SaveSession(ctx context.Context, session *model.AssessmentSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("序列化量表会话失败: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.SessionID), data, stateTTL).Err(); err != nil {
		return fmt.Errorf("保存量表会话失败: %w", err)
	}
	return nil
}
