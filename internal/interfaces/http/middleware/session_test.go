package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-relay/internal/infrastructure/persistence/memory"
	"idea-relay/internal/interfaces/http/dto"
	apperrors "idea-relay/pkg/errors"
)

func guardedEngine(guard gin.HandlerFunc, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.POST("/generate-idea", guard, handler)
	return engine
}

func post(engine *gin.Engine, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate-idea", nil)
	if sessionID != "" {
		req.Header.Set(SessionIDHeader, sessionID)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSessionGuard_RejectsConcurrentRequest(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	blocking := true

	engine := guardedEngine(SessionGuard(memory.NewInflightRegistry(), time.Minute), func(c *gin.Context) {
		if blocking {
			blocking = false
			close(entered)
			<-release
		}
		c.Status(http.StatusOK)
	})

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- post(engine, "s-1") }()
	<-entered

	second := post(engine, "s-1")
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.JSONEq(t, `{"error":"A generation request is already in flight for this session"}`, second.Body.String())
	assert.Equal(t, string(apperrors.CodeSessionBusy), second.Header().Get(dto.ErrorCodeHeader))

	other := post(engine, "s-2")
	assert.Equal(t, http.StatusOK, other.Code)

	close(release)
	assert.Equal(t, http.StatusOK, (<-first).Code)

	third := post(engine, "s-1")
	assert.Equal(t, http.StatusOK, third.Code)
}

func TestSessionGuard_NoHeaderNotGuarded(t *testing.T) {
	registry := &countingRegistry{}
	engine := guardedEngine(SessionGuard(registry, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := post(engine, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, registry.acquires)
}

func TestSessionGuard_ReleasesWithRequestToken(t *testing.T) {
	registry := &countingRegistry{}
	engine := guardedEngine(SessionGuard(registry, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := post(engine, "s-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, registry.acquires)
	assert.Equal(t, 1, registry.releases)
	assert.Equal(t, w.Header().Get(RequestIDHeader), registry.token)
}

func TestSessionGuard_FailsOpen(t *testing.T) {
	registry := &countingRegistry{err: errors.New("redis down")}
	engine := guardedEngine(SessionGuard(registry, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := post(engine, "s-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, registry.releases)
}

type countingRegistry struct {
	err      error
	acquires int
	releases int
	token    string
}

func (r *countingRegistry) Acquire(_ context.Context, _ string, token string, _ time.Duration) (bool, error) {
	r.acquires++
	r.token = token
	if r.err != nil {
		return false, r.err
	}
	return true, nil
}

func (r *countingRegistry) Release(_ context.Context, _ string, token string) error {
	r.releases++
	return nil
}
