package idea

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-relay/internal/application/idea/ideatest"
	"idea-relay/internal/domain/entity"
	apperrors "idea-relay/pkg/errors"
)

func newTestGenerator(m *ideatest.ChatModel) *Generator {
	return NewGenerator(&ideatest.Factory{Model: m}, "openai")
}

func TestGenerator_PromptAndTemperature(t *testing.T) {
	m := ideatest.Reply(validIdeaJSON)
	g := newTestGenerator(m)

	_, err := g.Generate(context.Background(), &entity.GenerationRequest{
		Technology: "Go",
		Level:      "Advanced",
		Language:   "Spanish",
	})
	require.NoError(t, err)

	require.Equal(t, 1, m.Calls())
	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, schema.User, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, `Technology = "Go"`)
	assert.Contains(t, msgs[0].Content, `Difficulty = "Advanced"`)
	assert.Contains(t, msgs[0].Content, `"Spanish"`)
	assert.Contains(t, msgs[0].Content, "name, pitch, features, stack, challenges, outcomes")

	opts := m.Options()
	require.NotNil(t, opts.Temperature)
	assert.InDelta(t, 0.8, float64(*opts.Temperature), 1e-6)
}

func TestGenerator_LevelOmittedUsesAny(t *testing.T) {
	m := ideatest.Reply(validIdeaJSON)
	g := newTestGenerator(m)

	_, err := g.Generate(context.Background(), &entity.GenerationRequest{Technology: "Rust", Language: "English"})
	require.NoError(t, err)
	assert.Contains(t, m.Messages()[0].Content, `Difficulty = "any"`)
}

func TestGenerator_CustomLevelVerbatim(t *testing.T) {
	m := ideatest.Reply(validIdeaJSON)
	g := newTestGenerator(m)

	_, err := g.Generate(context.Background(), &entity.GenerationRequest{Technology: "Vue", Level: "weekend hacker", Language: "English"})
	require.NoError(t, err)
	assert.Contains(t, m.Messages()[0].Content, `Difficulty = "weekend hacker"`)
}

func TestGenerator_TierCanonicalizedInPrompt(t *testing.T) {
	m := ideatest.Reply(validIdeaJSON)
	g := newTestGenerator(m)

	_, err := g.Generate(context.Background(), &entity.GenerationRequest{Technology: "Go", Level: "expert", Language: "English"})
	require.NoError(t, err)
	assert.Contains(t, m.Messages()[0].Content, `Difficulty = "Expert"`)
	assert.NotContains(t, m.Messages()[0].Content, `Difficulty = "expert"`)
}

func TestGenerator_FencedAndUnfencedEqual(t *testing.T) {
	plain, err := newTestGenerator(ideatest.Reply(validIdeaJSON)).
		Generate(context.Background(), &entity.GenerationRequest{Technology: "React"})
	require.NoError(t, err)

	fenced, err := newTestGenerator(ideatest.Reply("```json\n"+validIdeaJSON+"\n```")).
		Generate(context.Background(), &entity.GenerationRequest{Technology: "React"})
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
	assert.Equal(t, "StudyBuddy", fenced.Name)
}

func TestGenerator_FailureKinds(t *testing.T) {
	tests := []struct {
		name  string
		model *ideatest.ChatModel
		want  *apperrors.AppError
	}{
		{name: "upstream error", model: ideatest.Fail(errors.New("dial tcp: connection refused")), want: apperrors.ErrUpstreamUnavailable},
		{name: "prose output", model: ideatest.Reply("Sorry, I can't help"), want: apperrors.ErrUpstreamMalformedOutput},
		{name: "wrong shape", model: ideatest.Reply(`{"name":"x"}`), want: apperrors.ErrSchemaMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := newTestGenerator(tt.model).Generate(context.Background(), &entity.GenerationRequest{Technology: "Go"})
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, tt.model.Calls())
		})
	}
}

func TestGenerator_ProviderUnavailable(t *testing.T) {
	g := NewGenerator(&ideatest.Factory{Err: errors.New("provider openai has no api key configured")}, "openai")

	_, err := g.Generate(context.Background(), &entity.GenerationRequest{Technology: "Go"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestGenerator_InvalidLevel(t *testing.T) {
	m := ideatest.Reply(validIdeaJSON)
	long := make([]rune, entity.MaxLevelRunes+1)
	for i := range long {
		long[i] = 'x'
	}

	_, err := newTestGenerator(m).Generate(context.Background(), &entity.GenerationRequest{Level: string(long)})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParam)
	assert.Zero(t, m.Calls())
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, outcomeOf(nil))
	assert.Equal(t, OutcomeSchemaMismatch, outcomeOf(apperrors.New(apperrors.CodeSchemaMismatch, "x")))
	assert.Equal(t, OutcomeMalformedOutput, outcomeOf(apperrors.New(apperrors.CodeUpstreamMalformedOutput, "x")))
	assert.Equal(t, OutcomeUpstreamUnavailable, outcomeOf(errors.New("boom")))
}
