package model

import "time"

// 業務トランザクションと同じTxで書き、relayがKafkaへ送る。
type OutboxEvent struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"event_id"`
	Topic     string     `gorm:"type:varchar(100);not null" json:"topic"`
	Key       string     `gorm:"type:varchar(100);not null" json:"key"`
	Payload   string     `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	SentAt    *time.Time `gorm:"index" json:"sent_at"`
}
