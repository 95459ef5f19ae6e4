// Package mq 提供账号事件投递
// 登录、登出等事件写入 Kafka，供下游（审计、在线状态等）消费
package mq

import (
	"context"
	"time"
)

// 事件类型
const (
	EventLogin  = "login"
	EventLogout = "logout"
)

// AccountEvent 账号事件
type AccountEvent struct {
	Type   string    `json:"type"`             // login / logout
	UserID string    `json:"userId"`           // 用户 UUID
	Method string    `json:"method,omitempty"` // 登录方式：pwd / code / wechat / register / refresh
	At     time.Time `json:"at"`
}

// EventPublisher 账号事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, event AccountEvent) error
	Close() error
}

// noopPublisher 关闭事件投递时使用
type noopPublisher struct{}

// NewNoopPublisher 创建空实现
func NewNoopPublisher() EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, event AccountEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
