package wire

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/wire"

	"idea-relay/internal/application/idea"
	"idea-relay/internal/config"
	"idea-relay/internal/domain/repository"
	"idea-relay/internal/infrastructure/llm"
	"idea-relay/internal/infrastructure/persistence/memory"
	"idea-relay/internal/infrastructure/persistence/redis"
	"idea-relay/internal/interfaces/http/handler"
	"idea-relay/internal/interfaces/http/router"
	"idea-relay/pkg/logger"
)

// 会话登记后端
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// SessionSet 会话在途登记提供者集合
var SessionSet = wire.NewSet(
	ProvideRedisClient,
	ProvideInflightRegistry,
	ProvideReadinessPinger,
)

// IdeaSet 创意生成提供者集合
var IdeaSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(idea.ChatModelFactory), new(*llm.EinoFactory)),
	wire.Bind(new(handler.LLMStatus), new(*llm.EinoFactory)),
	ProvideIdeaGenerator,
	wire.Bind(new(handler.IdeaGenerator), new(*idea.Generator)),
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewIdeaHandler,
	handler.NewHealthHandler,
	router.New,
)

// ProvideRedisClient 提供 Redis 客户端；仅 redis 会话后端时连接，否则返回 nil
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Session.Enabled || !strings.EqualFold(cfg.Session.Backend, SessionBackendRedis) {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis for session registry: %w", err)
	}
	logger.Info(ctx, "redis session registry connected",
		"host", cfg.Cache.Redis.Host,
		"port", cfg.Cache.Redis.Port,
	)
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideInflightRegistry 按配置选择会话登记后端；未启用时返回 nil
func ProvideInflightRegistry(cfg *config.Config, client *redis.Client) (repository.InflightRegistry, error) {
	if !cfg.Session.Enabled {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Session.Backend)) {
	case "", SessionBackendMemory:
		return memory.NewInflightRegistry(), nil
	case SessionBackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis session backend requires a redis client")
		}
		return redis.NewInflightRegistry(client), nil
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.Session.Backend)
	}
}

// ProvideReadinessPinger 就绪检查使用的 redis；未连接时返回 nil 接口
func ProvideReadinessPinger(client *redis.Client) handler.Pinger {
	if client == nil {
		return nil
	}
	return client
}

// ProvideIdeaGenerator 提供创意生成器，使用默认提供商
func ProvideIdeaGenerator(factory idea.ChatModelFactory, cfg *config.Config) *idea.Generator {
	return idea.NewGenerator(factory, cfg.LLM.DefaultProvider)
}
