package websocket

import (
	"log"

	"github.com/dshapiro789/NationalParkExplorer/internal/storage/models"
)

// EventBroadcaster handles broadcasting WebSocket events.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// BroadcastConnectivityChanged sends a connectivity status change event.
func (b *EventBroadcaster) BroadcastConnectivityChanged(online bool) {
	msg := NewMessage(TypeConnectivityChanged, ConnectivityPayload{Online: online})
	b.broadcast(msg)
}

// BroadcastRegionSyncCompleted sends a region sync completed event.
func (b *EventBroadcaster) BroadcastRegionSyncCompleted(result models.RegionSyncResult) {
	payload := RegionSyncPayload{
		Region:     result.Region,
		Status:     "success",
		ParksFound: result.ParksFound,
		FromCache:  result.FromCache,
		SyncedAt:   result.SyncedAt,
	}
	if result.Error != nil {
		payload.Status = "error"
	}

	msg := NewMessage(TypeRegionSyncCompleted, payload)
	b.broadcast(msg)
}

// BroadcastRegionSyncError sends a region sync error event.
func (b *EventBroadcaster) BroadcastRegionSyncError(region string, err error) {
	payload := RegionSyncErrorPayload{
		Region:  region,
		Error:   "sync_error",
		Message: err.Error(),
	}

	msg := NewMessage(TypeRegionSyncError, payload)
	b.broadcast(msg)
}

// BroadcastNotification sends a notification to all connected clients.
func (b *EventBroadcaster) BroadcastNotification(level, title, message string) {
	payload := NotificationPayload{
		Level:       level,
		Title:       title,
		Message:     message,
		Dismissible: true,
	}

	msg := NewMessage(TypeNotification, payload)
	b.broadcast(msg)
}

// broadcast sends a message to all connected clients.
func (b *EventBroadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}

	b.hub.Broadcast(data)
}
