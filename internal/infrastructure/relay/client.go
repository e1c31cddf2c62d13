// Package relay 提供创意中转服务的 HTTP 客户端
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"idea-relay/internal/domain/entity"
)

// ErrRequestFailed 中转服务返回非 2xx
var ErrRequestFailed = errors.New("idea relay request failed")

const (
	generatePath    = "/generate-idea"
	sessionIDHeader = "X-Session-ID"
)

// StatusError 携带中转服务的状态码与错误文案
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status=%d", ErrRequestFailed, e.StatusCode)
	}
	return fmt.Sprintf("%s: status=%d: %s", ErrRequestFailed, e.StatusCode, e.Message)
}

// Unwrap 使 errors.Is(err, ErrRequestFailed) 成立
func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}

// Client 中转服务客户端；一个客户端对应一个会话
type Client struct {
	endpoint   string
	sessionID  string
	httpClient *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithSessionID 指定会话 ID（默认随机生成）
func WithSessionID(id string) Option {
	return func(c *Client) {
		if strings.TrimSpace(id) != "" {
			c.sessionID = strings.TrimSpace(id)
		}
	}
}

// NewClient 创建客户端，baseURL 形如 http://localhost:5000
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("relay endpoint is empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid relay endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid relay endpoint: %q", baseURL)
	}

	// 不设超时，请求时长由调用方 ctx 决定
	c := &Client{
		endpoint:   endpoint,
		sessionID:  uuid.New().String(),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SessionID 返回当前会话 ID
func (c *Client) SessionID() string {
	return c.sessionID
}

// GenerateIdea 请求生成一条创意
func (c *Client) GenerateIdea(ctx context.Context, req entity.GenerationRequest) (*entity.IdeaRecord, error) {
	reqBody, err := json.Marshal(&req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+generatePath, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(sessionIDHeader, c.sessionID)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generate request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: httpResp.StatusCode, Message: readErrorMessage(httpResp.Body)}
	}

	var idea entity.IdeaRecord
	if err := json.NewDecoder(httpResp.Body).Decode(&idea); err != nil {
		return nil, fmt.Errorf("failed to decode idea response: %w", err)
	}
	return &idea, nil
}

func readErrorMessage(r io.Reader) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil {
		return ""
	}
	return body.Error
}
