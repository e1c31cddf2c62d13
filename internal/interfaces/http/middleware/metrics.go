package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"idea-relay/internal/interfaces/http/dto"
	"idea-relay/pkg/metrics"
)

// errorCodeNone 成功请求的 error_code 标签值
const errorCodeNone = "none"

// Metrics Prometheus 指标采集中间件
//
// 失败类型取自 X-Error-Code 响应头，作为 error_code 标签记录。
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		if reqSize := float64(c.Request.ContentLength); reqSize > 0 {
			metrics.HTTPRequestSize.WithLabelValues(method, path).Observe(reqSize)
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status, responseErrorCode(c)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if respSize := float64(c.Writer.Size()); respSize > 0 {
			metrics.HTTPResponseSize.WithLabelValues(method, path).Observe(respSize)
		}
	}
}

func responseErrorCode(c *gin.Context) string {
	if code := c.Writer.Header().Get(dto.ErrorCodeHeader); code != "" {
		return code
	}
	return errorCodeNone
}
