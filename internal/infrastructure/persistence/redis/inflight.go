package redis

import (
	"context"
	"time"
)

const inflightKeyPrefix = "idea-relay:inflight:"

// InflightRegistry 基于 Redis 的在途请求登记表，多实例部署时共享
type InflightRegistry struct {
	client *Client
}

// NewInflightRegistry 创建 Redis 登记表
func NewInflightRegistry(client *Client) *InflightRegistry {
	return &InflightRegistry{client: client}
}

// Acquire 通过 SET NX PX 占用会话
func (r *InflightRegistry) Acquire(ctx context.Context, sessionID, token string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, inflightKeyPrefix+sessionID, token, ttl)
}

// Release 仅当 token 匹配时删除
func (r *InflightRegistry) Release(ctx context.Context, sessionID, token string) error {
	_, err := r.client.DelIfEquals(ctx, inflightKeyPrefix+sessionID, token)
	return err
}
