package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"kama_account_client/internal/config"
	"kama_account_client/pkg/errorx"

	"go.uber.org/zap"
)

// HTTPTransport 基于 net/http 的 Transport 实现
// 负责拼接 URL、编码请求体、附加 Bearer Token、解码响应信封
type HTTPTransport struct {
	baseURL     string
	httpClient  *http.Client
	tokenSource func() string
	headers     http.Header
}

// Option HTTPTransport 可选项
type Option func(*HTTPTransport)

// WithHTTPClient 替换底层 http.Client（超时配置随之失效）
func WithHTTPClient(client *http.Client) Option {
	return func(t *HTTPTransport) {
		t.httpClient = client
	}
}

// WithTokenSource 每次请求前调用 fn 取得 Bearer Token，返回空串时不带 Authorization 头
func WithTokenSource(fn func() string) Option {
	return func(t *HTTPTransport) {
		t.tokenSource = fn
	}
}

// WithHeader 为每个请求附加固定请求头
func WithHeader(key, value string) Option {
	return func(t *HTTPTransport) {
		t.headers.Set(key, value)
	}
}

// NewHTTPTransport 根据客户端配置创建 HTTPTransport
// cfg.Token 非空时作为默认 Token 来源，可被 WithTokenSource 覆盖
func NewHTTPTransport(cfg config.ClientConfig, opts ...Option) *HTTPTransport {
	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	t := &HTTPTransport{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		headers:    make(http.Header),
	}
	if token := cfg.Token; token != "" {
		t.tokenSource = func() string { return token }
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send 实现 Transport 接口
// 返回的错误均为 *errorx.CodeError；success=false 的信封正常解码，不视为错误
func (t *HTTPTransport) Send(ctx context.Context, call Call, out any) error {
	req, err := t.newRequest(ctx, call)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		zap.L().Debug("account api request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("cost", time.Since(start)),
			zap.Error(err),
		)
		return errorx.Wrapf(err, errorx.CodeNetworkError, "请求 %s 失败", call.Endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorx.Wrapf(err, errorx.CodeNetworkError, "读取 %s 响应失败", call.Endpoint)
	}

	zap.L().Debug("account api request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("cost", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errorx.Newf(errorx.CodeUnauthorized, "请求 %s 未授权: %s", call.Endpoint, strings.TrimSpace(string(body)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return errorx.Newf(errorx.CodeHTTPStatus, "请求 %s 返回状态码 %d: %s", call.Endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errorx.Wrapf(err, errorx.CodeDecodeError, "解析 %s 响应失败", call.Endpoint)
	}
	return nil
}

// newRequest 按 Call 构造 *http.Request
func (t *HTTPTransport) newRequest(ctx context.Context, call Call) (*http.Request, error) {
	url := t.baseURL + "/" + strings.TrimLeft(call.Endpoint, "/")
	if len(call.Query) > 0 {
		url += "?" + call.Query.Encode()
	}

	method := http.MethodPost
	if call.Method == MethodGet {
		method = http.MethodGet
	}

	var body io.Reader
	if call.Body != nil && method != http.MethodGet {
		buf, err := json.Marshal(call.Body)
		if err != nil {
			return nil, errorx.Wrapf(err, errorx.CodeEncodeError, "编码 %s 请求体失败", call.Endpoint)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errorx.Wrapf(err, errorx.CodeEncodeError, "构造 %s 请求失败", call.Endpoint)
	}
	for key, values := range t.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.tokenSource != nil {
		if token := t.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

var _ Transport = (*HTTPTransport)(nil)
