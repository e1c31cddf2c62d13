package tui

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-relay/internal/application/idea"
	"idea-relay/internal/application/idea/ideatest"
	"idea-relay/internal/config"
	"idea-relay/internal/infrastructure/persistence/memory"
	"idea-relay/internal/infrastructure/relay"
	"idea-relay/internal/interfaces/http/handler"
	"idea-relay/internal/interfaces/http/router"
)

const spanishIdea = "```json\n" + `{
  "name": "Planificador de Rutas",
  "pitch": "Una herramienta para planear rutas en bicicleta. Calcula el desnivel.",
  "features": ["Mapa interactivo", "Perfil de elevación", "Exportar GPX"],
  "stack": {"frontend": "HTMX", "backend": "Go", "DB": "PostGIS", "APIs": "OpenStreetMap", "libraries": "chi"},
  "challenges": ["Cálculo de rutas", "Rendimiento"],
  "outcomes": ["Concurrencia en Go", "Datos geoespaciales"]
}` + "\n```"

type readyLLM struct{}

func (readyLLM) Configured() bool { return true }

// newRelay 启动完整的中转服务（假模型 + 真实路由）并返回指向它的界面模型
func newRelay(t *testing.T, chatModel *ideatest.ChatModel) *Model {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:      config.AppConfig{Name: "idea-relay", Env: "test"},
		Session:  config.SessionConfig{Enabled: true, Backend: "memory", TTL: time.Minute},
		Security: config.SecurityConfig{CORS: config.CORSConfig{AllowedOrigins: []string{"*"}}},
	}
	gen := idea.NewGenerator(&ideatest.Factory{Model: chatModel}, "openai")
	r := router.New(cfg, handler.NewIdeaHandler(gen), handler.NewHealthHandler(readyLLM{}, nil), memory.NewInflightRegistry())

	srv := httptest.NewServer(r.Engine())
	t.Cleanup(srv.Close)

	client, err := relay.NewClient(srv.URL)
	require.NoError(t, err)
	return New(context.Background(), client)
}

func TestEndToEnd_SpanishIdea(t *testing.T) {
	chatModel := ideatest.Reply(spanishIdea)
	m := newRelay(t, chatModel)

	m.technology.SetValue("Go")
	m.language.SetValue("Spanish")
	m.levelIdx = 3
	require.Equal(t, "Expert", m.Request().Level)

	run(t, m, m.Submit())

	require.Empty(t, m.Err())
	require.NotNil(t, m.Idea())
	assert.Equal(t, "Planificador de Rutas", m.Idea().Name)
	assert.Equal(t, "Una herramienta para planear rutas en bicicleta. Calcula el desnivel.", m.Idea().Pitch)

	prompt := chatModel.Messages()[0].Content
	assert.Contains(t, prompt, `Technology = "Go"`)
	assert.Contains(t, prompt, `Difficulty = "Expert"`)
	assert.Contains(t, prompt, `"Spanish"`)

	for s := section(0); s < sectionCount; s++ {
		m.expanded[s] = true
	}
	v := view(m)
	assert.Contains(t, v, "Planificador de Rutas")
	assert.Contains(t, v, "Pitch: Una herramienta para planear rutas en bicicleta.")

	ordered := []string{
		"Features", "Mapa interactivo", "Perfil de elevación", "Exportar GPX",
		"Tech Stack", "Frontend: HTMX", "Backend: Go", "Database: PostGIS", "APIs: OpenStreetMap", "Libraries: chi",
		"Challenges", "Cálculo de rutas", "Rendimiento",
		"Learning Outcomes", "Concurrencia en Go", "Datos geoespaciales",
	}
	last := -1
	for _, want := range ordered {
		idx := strings.Index(v, want)
		require.GreaterOrEqual(t, idx, 0, want)
		assert.Greater(t, idx, last, want)
		last = idx
	}
}

func TestEndToEnd_UpstreamNetworkError(t *testing.T) {
	m := newRelay(t, ideatest.Fail(errors.New("dial tcp 10.0.0.1:443: i/o timeout")))

	run(t, m, m.Submit())

	assert.Equal(t, ErrFetchFailed, m.Err())
	assert.Nil(t, m.Idea())
	assert.False(t, m.Loading())

	v := view(m)
	assert.Contains(t, v, "Failed to fetch idea")
	assert.Contains(t, v, "Generate Idea")
	assert.NotContains(t, v, "Generating...")
	assert.NotNil(t, m.Submit(), "trigger is enabled again")
}

func TestEndToEnd_FailureAfterSuccessKeepsIdea(t *testing.T) {
	chatModel := ideatest.Reply(spanishIdea)
	m := newRelay(t, chatModel)
	run(t, m, m.Submit())
	require.NotNil(t, m.Idea())
	before := *m.Idea()

	broken := newRelay(t, ideatest.Reply("lo siento, no puedo"))
	m.client = broken.client
	run(t, m, m.Submit())

	assert.Equal(t, ErrFetchFailed, m.Err())
	require.NotNil(t, m.Idea())
	assert.Equal(t, before, *m.Idea())
}
