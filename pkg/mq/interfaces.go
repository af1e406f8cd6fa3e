package mq

import "context"

// EventPublisher 消息生产者接口
type EventPublisher interface {
	PublishVideoEvent(ctx context.Context, event *VideoEvent) error
}

// VideoEventHandler 消费者的业务处理接口
type VideoEventHandler interface {
	HandleVideoEvent(ctx context.Context, event *VideoEvent) error
}

// 确保Producer实现EventPublisher接口
var _ EventPublisher = (*Producer)(nil)

// NopPublisher 未配置RabbitMQ时使用, 孤儿数据由定时sweep兜底
type NopPublisher struct{}

func (NopPublisher) PublishVideoEvent(ctx context.Context, event *VideoEvent) error { return nil }
