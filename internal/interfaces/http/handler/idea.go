// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"idea-relay/internal/domain/entity"
	"idea-relay/internal/interfaces/http/dto"
	"idea-relay/pkg/logger"
)

// IdeaGenerator 创意生成能力（由 application/idea.Generator 实现）
type IdeaGenerator interface {
	Generate(ctx context.Context, req *entity.GenerationRequest) (*entity.IdeaRecord, error)
}

// IdeaHandler 创意生成处理器
type IdeaHandler struct {
	generator IdeaGenerator
}

// NewIdeaHandler 创建创意生成处理器
func NewIdeaHandler(generator IdeaGenerator) *IdeaHandler {
	return &IdeaHandler{generator: generator}
}

// GenerateIdea 生成一条项目创意
// @Summary 生成项目创意
// @Description 按技术、难度、语言调用一次大模型，返回结构化的创意记录
// @Tags Idea
// @Accept json
// @Produce json
// @Param body body dto.GenerateIdeaRequest true "生成请求"
// @Success 200 {object} entity.IdeaRecord
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate-idea [post]
func (h *IdeaHandler) GenerateIdea(c *gin.Context) {
	var req dto.GenerateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn(c.Request.Context(), "invalid generate-idea body", "error", err.Error())
		dto.BadRequest(c, dto.MsgInvalidBody)
		return
	}

	in := req.ToEntity()
	if _, err := in.Validate(); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	idea, err := h.generator.Generate(c.Request.Context(), in)
	if err != nil {
		dto.GenerationFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, idea)
}
