// Package idea 实现创意生成链路：渲染提示词、单次调用大模型、去代码块、解析并校验结构
package idea

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"idea-relay/internal/domain/entity"
	einoobs "idea-relay/internal/observability/eino"
	apperrors "idea-relay/pkg/errors"
	"idea-relay/pkg/logger"
	"idea-relay/pkg/metrics"
)

// Temperature 生成创意时固定使用的采样温度
const Temperature float32 = 0.8

const workflowName = "idea_generate"

// 生成结果分类（指标标签）
const (
	OutcomeSuccess             = "success"
	OutcomeInvalidParam        = "invalid_param"
	OutcomeUpstreamUnavailable = "upstream_unavailable"
	OutcomeMalformedOutput     = "upstream_malformed_output"
	OutcomeSchemaMismatch      = "schema_mismatch"
)

type generateInput struct {
	Technology string
	Level      entity.Level
	Language   string
}

type ideaChainState struct {
	In       *generateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

// Generator 创意生成器
type Generator struct {
	factory  ChatModelFactory
	provider string

	chainOnce sync.Once
	chain     compose.Runnable[*generateInput, *entity.IdeaRecord]
	chainErr  error
}

// NewGenerator 创建生成器；provider 为空时使用配置中的默认提供商
func NewGenerator(factory ChatModelFactory, provider string) *Generator {
	return &Generator{factory: factory, provider: provider}
}

// Generate 生成一条创意。失败时总是返回 *apperrors.AppError，
// 错误码为 CodeInvalidParam / CodeUpstreamUnavailable / CodeUpstreamMalformedOutput / CodeSchemaMismatch 之一。
func (g *Generator) Generate(ctx context.Context, req *entity.GenerationRequest) (*entity.IdeaRecord, error) {
	start := time.Now()
	if req == nil {
		req = &entity.GenerationRequest{}
	}

	rec, err := g.generate(ctx, req)
	outcome := outcomeOf(err)
	metrics.IdeaGenerationTotal.WithLabelValues(outcome).Inc()
	metrics.IdeaGenerationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Error(ctx, "idea generation failed", err,
			"outcome", outcome,
			"technology", req.Technology,
			"level", req.Level,
			"language", req.Language,
		)
		return nil, err
	}
	return rec, nil
}

func (g *Generator) generate(ctx context.Context, req *entity.GenerationRequest) (*entity.IdeaRecord, error) {
	level, err := req.Validate()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidParam, err.Error())
	}
	if g.factory == nil {
		return nil, apperrors.New(apperrors.CodeUpstreamUnavailable, "llm factory not configured")
	}

	chain, err := g.getChain()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to build idea chain")
	}

	rec, err := chain.Invoke(ctx, &generateInput{
		Technology: req.Technology,
		Level:      level,
		Language:   req.Language,
	})
	if err != nil {
		return nil, classify(err)
	}
	return rec, nil
}

func (g *Generator) getChain() (compose.Runnable[*generateInput, *entity.IdeaRecord], error) {
	g.chainOnce.Do(func() {
		g.chain, g.chainErr = g.buildChain(context.Background())
	})
	return g.chain, g.chainErr
}

func (g *Generator) buildChain(ctx context.Context) (compose.Runnable[*generateInput, *entity.IdeaRecord], error) {
	chain := compose.NewChain[*generateInput, *entity.IdeaRecord]()

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, in *generateInput) (*ideaChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &ideaChainState{In: in}, nil
		}),
		compose.WithNodeName("idea.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *ideaChainState) (*ideaChainState, error) {
			msgs, err := formatIdeaMessages(ctx, st.In)
			if err != nil {
				return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to render prompt")
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("idea.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *ideaChainState) (*ideaChainState, error) {
			ctx = einoobs.WithWorkflowProvider(ctx, workflowName, g.provider)

			chatModel, err := g.factory.Get(ctx, g.provider)
			if err != nil {
				return nil, apperrors.Wrap(err, apperrors.CodeUpstreamUnavailable, "completion provider unavailable")
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, model.WithTemperature(Temperature))
			if err != nil {
				return nil, apperrors.Wrap(err, apperrors.CodeUpstreamUnavailable, "completion API call failed")
			}
			if outMsg == nil {
				return nil, apperrors.New(apperrors.CodeUpstreamUnavailable, "empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("idea.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *ideaChainState) (*entity.IdeaRecord, error) {
			return DecodeIdea(StripFence(st.OutMsg.Content))
		}),
		compose.WithNodeName("idea.finalize"),
	)

	return chain.Compile(ctx, compose.WithGraphName("idea_generate_chain"))
}

// classify 把链路错误归入已知失败类型；未知错误视为上游不可用
func classify(err error) *apperrors.AppError {
	if appErr, ok := findAppError(err); ok {
		switch appErr.Code {
		case apperrors.CodeUpstreamUnavailable,
			apperrors.CodeUpstreamMalformedOutput,
			apperrors.CodeSchemaMismatch,
			apperrors.CodeInternalError:
			return appErr
		}
	}
	return apperrors.Wrap(err, apperrors.CodeUpstreamUnavailable, "completion API call failed")
}

func findAppError(err error) (*apperrors.AppError, bool) {
	if !apperrors.IsAppError(err) {
		return nil, false
	}
	return apperrors.AsAppError(err), true
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	switch apperrors.AsAppError(err).Code {
	case apperrors.CodeInvalidParam:
		return OutcomeInvalidParam
	case apperrors.CodeUpstreamMalformedOutput:
		return OutcomeMalformedOutput
	case apperrors.CodeSchemaMismatch:
		return OutcomeSchemaMismatch
	default:
		return OutcomeUpstreamUnavailable
	}
}
