// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"
)

// InflightRegistry 记录每个会话当前在途的生成请求，保证同一会话至多一个
type InflightRegistry interface {
	// Acquire 尝试占用会话；已被占用时返回 false
	Acquire(ctx context.Context, sessionID, token string, ttl time.Duration) (bool, error)
	// Release 释放会话，仅当 token 与占用者一致时生效
	Release(ctx context.Context, sessionID, token string) error
}
