// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "idea-relay/pkg/errors"
)

// ErrorCodeHeader 失败类型响应头，响应体保持通用文案
const ErrorCodeHeader = "X-Error-Code"

// 对外错误文案
const (
	MsgParseFailed    = "Failed to parse idea JSON"
	MsgSchemaMismatch = "Idea JSON does not match the expected shape"
	MsgSessionBusy    = "A generation request is already in flight for this session"
	MsgInternalError  = "Internal server error"
	MsgInvalidBody    = "Invalid request body"
)

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error 返回错误响应
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, ErrorResponse{Error: message})
}

// AbortWithError 中止后续处理并返回错误响应（中间件使用）
func AbortWithError(c *gin.Context, httpCode int, code apperrors.ErrorCode, message string) {
	c.Header(ErrorCodeHeader, string(code))
	c.AbortWithStatusJSON(httpCode, ErrorResponse{Error: message})
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	c.Header(ErrorCodeHeader, string(apperrors.CodeInvalidParam))
	Error(c, http.StatusBadRequest, message)
}

// GenerationFailed 按失败类型返回错误；不暴露模型原始输出与内部错误
func GenerationFailed(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	c.Header(ErrorCodeHeader, string(appErr.Code))

	switch appErr.Code {
	case apperrors.CodeInvalidParam:
		Error(c, http.StatusBadRequest, appErr.Message)
	case apperrors.CodeSchemaMismatch:
		Error(c, http.StatusInternalServerError, MsgSchemaMismatch)
	default:
		Error(c, http.StatusInternalServerError, MsgParseFailed)
	}
}
