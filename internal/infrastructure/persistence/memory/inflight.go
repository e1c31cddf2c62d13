// Package memory 提供进程内的存储实现
package memory

import (
	"context"
	"sync"
	"time"
)

type inflightEntry struct {
	token     string
	expiresAt time.Time
}

// InflightRegistry 进程内在途请求登记表
type InflightRegistry struct {
	mu      sync.Mutex
	entries map[string]inflightEntry
	now     func() time.Time
}

// NewInflightRegistry 创建进程内登记表
func NewInflightRegistry() *InflightRegistry {
	return &InflightRegistry{
		entries: make(map[string]inflightEntry),
		now:     time.Now,
	}
}

// Acquire 占用会话，过期条目视为空闲
func (r *InflightRegistry) Acquire(_ context.Context, sessionID, token string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.entries[sessionID]; ok && now.Before(e.expiresAt) {
		return false, nil
	}
	r.entries[sessionID] = inflightEntry{token: token, expiresAt: now.Add(ttl)}
	return true, nil
}

// Release 释放会话
func (r *InflightRegistry) Release(_ context.Context, sessionID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[sessionID]; ok && e.token == token {
		delete(r.entries, sessionID)
	}
	return nil
}
