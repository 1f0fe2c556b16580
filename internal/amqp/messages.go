package amqp

import (
	"encoding/json"
	"time"
)

// SyncRequestedMessage asks the worker to push the current store state to the
// remote. It carries no data: the worker reads the store itself, so a burst
// of messages collapses into one push.
type SyncRequestedMessage struct {
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSyncRequestedMessage(reason string) *SyncRequestedMessage {
	return &SyncRequestedMessage{
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

func (m *SyncRequestedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SyncRequestedMessageFromJSON(data []byte) (*SyncRequestedMessage, error) {
	var msg SyncRequestedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
