// Package transport 定义账号 API 客户端所依赖的传输层契约
// 以及基于 net/http 的默认实现
package transport

import (
	"context"
	"net/url"
)

// Method 请求方法，取值与前端 http 工具保持一致（小写）
type Method string

const (
	MethodGet  Method = "get"
	MethodPost Method = "post"
)

// Envelope 统一响应信封，每一次传输调用都返回它
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
	Data    *T     `json:"data,omitempty"`
}

// OK 便于调用方判断业务是否成功
func (e *Envelope[T]) OK() bool {
	return e != nil && e.Success
}

// Call 一次出站请求的描述
type Call struct {
	Endpoint string     // 相对路径，如 "user/login"
	Body     any        // 请求体，nil 表示无请求体
	Query    url.Values // 查询参数，nil 表示无查询参数
	Method   Method
}

// Transport 传输层接口
// Send 发送 call 并把响应信封解码到 out（通常是 *Envelope[T]）
type Transport interface {
	Send(ctx context.Context, call Call, out any) error
}

// TransportFunc 让普通函数满足 Transport 接口
type TransportFunc func(ctx context.Context, call Call, out any) error

// Send 实现 Transport
func (f TransportFunc) Send(ctx context.Context, call Call, out any) error {
	return f(ctx, call, out)
}

// Send 以 T 作为信封 data 的类型发送一次请求
// 传输层返回的错误原样返回
func Send[T any](ctx context.Context, tr Transport, call Call) (*Envelope[T], error) {
	env := new(Envelope[T])
	if err := tr.Send(ctx, call, env); err != nil {
		return nil, err
	}
	return env, nil
}
