package websocket

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeConnectivityChanged MessageType = "connectivity.status_changed"
	TypeRegionSyncCompleted MessageType = "region.sync_completed"
	TypeRegionSyncError     MessageType = "region.sync_error"
	TypeNotification        MessageType = "notification"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// ConnectivityPayload is the payload for connectivity.status_changed events.
type ConnectivityPayload struct {
	Online bool `json:"online"`
}

// RegionSyncPayload is the payload for region.sync_completed events.
type RegionSyncPayload struct {
	Region     string    `json:"region"`
	Status     string    `json:"status"`
	ParksFound int       `json:"parks_found"`
	FromCache  bool      `json:"from_cache"`
	SyncedAt   time.Time `json:"synced_at"`
}

// RegionSyncErrorPayload is the payload for region.sync_error events.
type RegionSyncErrorPayload struct {
	Region  string `json:"region"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Level       string `json:"level"` // info, warning, error, success
	Title       string `json:"title"`
	Message     string `json:"message"`
	Dismissible bool   `json:"dismissible"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
