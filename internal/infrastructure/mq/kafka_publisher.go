package mq

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	myconfig "kama_account_client/internal/config"
	"kama_account_client/pkg/errorx"
)

// 事件模式
const (
	MessageModeOff   = "off"
	MessageModeKafka = "kafka"
)

// messageWriter kafka.Writer 中本包用到的部分
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher 基于 kafka-go 的事件发布实现
// 同一用户的事件以 UserID 为 Key，经 Hash 分区后保持有序
type kafkaPublisher struct {
	writer      messageWriter
	loginTopic  string
	logoutTopic string
}

// NewKafkaPublisher 创建 Kafka 事件发布器
// Writer 不绑定 Topic，按事件类型逐条指定
func NewKafkaPublisher(conf myconfig.KafkaConfig) EventPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(conf.HostPort),
		Balancer:               &kafka.Hash{},
		WriteTimeout:           conf.Timeout.Duration,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	return newKafkaPublisher(writer, conf)
}

func newKafkaPublisher(writer messageWriter, conf myconfig.KafkaConfig) *kafkaPublisher {
	loginTopic := conf.LoginTopic
	if loginTopic == "" {
		loginTopic = "account_login"
	}
	logoutTopic := conf.LogoutTopic
	if logoutTopic == "" {
		logoutTopic = "account_logout"
	}
	return &kafkaPublisher{
		writer:      writer,
		loginTopic:  loginTopic,
		logoutTopic: logoutTopic,
	}
}

// Publish 写入一条账号事件
func (k *kafkaPublisher) Publish(ctx context.Context, event AccountEvent) error {
	topic := k.loginTopic
	if event.Type == EventLogout {
		topic = k.logoutTopic
	}
	value, err := json.Marshal(event)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "编码账号事件失败")
	}
	if err := k.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(event.UserID),
		Value: value,
	}); err != nil {
		return errorx.Wrapf(err, errorx.CodeServerBusy, "写入 kafka topic %s 失败", topic)
	}
	return nil
}

// Close 关闭 Writer
func (k *kafkaPublisher) Close() error {
	if err := k.writer.Close(); err != nil {
		zap.L().Error("关闭 kafka writer 失败", zap.Error(err))
		return err
	}
	return nil
}

// Init 按 kafkaConfig.messageMode 创建事件发布器
func Init(conf myconfig.KafkaConfig) (EventPublisher, error) {
	switch conf.MessageMode {
	case "", MessageModeOff:
		return NewNoopPublisher(), nil
	case MessageModeKafka:
		if conf.HostPort == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "kafkaConfig.hostPort 未配置")
		}
		zap.L().Info("account events: kafka", zap.String("hostPort", conf.HostPort))
		return NewKafkaPublisher(conf), nil
	default:
		return nil, errorx.Newf(errorx.CodeInvalidParam, "unknown messageMode %q", conf.MessageMode)
	}
}
