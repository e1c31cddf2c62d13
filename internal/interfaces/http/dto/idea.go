package dto

import "idea-relay/internal/domain/entity"

// GenerateIdeaRequest 生成创意请求；三个字段均可省略
type GenerateIdeaRequest struct {
	Technology string `json:"technology"`
	Level      string `json:"level"`
	Language   string `json:"language"`
}

// ToEntity 转换为领域请求
func (r GenerateIdeaRequest) ToEntity() *entity.GenerationRequest {
	return &entity.GenerationRequest{
		Technology: r.Technology,
		Level:      r.Level,
		Language:   r.Language,
	}
}
