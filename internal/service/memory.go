package service

import (
	"context"
	"sync"

	"github.com/mindcare/mindscreen-go/internal/model"
)

// MemoryStore 内存会话存储，用于测试和无 Redis 的本地运行
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*model.ConversationState
	sessions      map[string]*model.AssessmentSession
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*model.ConversationState),
		sessions:      make(map[string]*model.AssessmentSession),
	}
}

// LoadConversation 加载会话状态
func (s *MemoryStore) LoadConversation(_ context.Context, conversationID string) (*model.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.conversations[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *state
	return &copied, nil
}

// SaveConversation 保存会话状态
func (s *MemoryStore) SaveConversation(_ context.Context, state *model.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *state
	s.conversations[state.ConversationID] = &copied
	return nil
}

// LoadSession 加载量表作答会话
func (s *MemoryStore) LoadSession(_ context.Context, sessionID string) (*model.AssessmentSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *session
	return &copied, nil
}

// SaveSession 保存量表作答会话
func (s *MemoryStore) SaveSession(_ context.Context, session *model.AssessmentSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}
