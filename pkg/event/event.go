package event

import (
	"time"

	"github.com/google/uuid"
)

// New は新しいイベントを生成する。
func New(eventType Type, reason string) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
}
