package model

import (
	"time"

	"VideoTube.com/pkg/constants"
)

// Subscription 订阅关系, Subscriber 订阅了 Channel
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false" json:"_id,string"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:idx_subscriber_channel,priority:1" json:"subscriber,string"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:idx_subscriber_channel,priority:2;index" json:"channel,string"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
}

func (Subscription) TableName() string {
	return constants.SubscriptionsTableName
}
