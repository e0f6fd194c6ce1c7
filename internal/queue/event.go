// Package queue carries media cleanup work over RabbitMQ.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MediaCleanupEvent asks the janitor to delete an uploaded file the API could
// not delete inline.
type MediaCleanupEvent struct {
	FileID      string    `json:"file_id"`
	Reason      string    `json:"reason"`
	Attempt     int       `json:"attempt"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewMediaCleanupEvent(fileID, reason string) MediaCleanupEvent {
	return MediaCleanupEvent{
		FileID:      fileID,
		Reason:      reason,
		Attempt:     1,
		RequestedAt: time.Now().UTC(),
	}
}

func (e MediaCleanupEvent) Validate() error {
	if strings.TrimSpace(e.FileID) == "" {
		return errors.New("file_id is required")
	}
	return nil
}

func encodeEvent(e MediaCleanupEvent) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(e)
}

func decodeEvent(body []byte) (MediaCleanupEvent, error) {
	var ev MediaCleanupEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ev, fmt.Errorf("unmarshal: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return ev, err
	}
	if ev.Attempt < 1 {
		ev.Attempt = 1
	}
	return ev, nil
}
