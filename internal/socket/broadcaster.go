package socket

import (
	"context"
	"log"
	"time"
)

// Broadcaster provides high-level methods for broadcasting events
type Broadcaster struct {
	bus Publisher
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(bus Publisher) *Broadcaster {
	return &Broadcaster{bus: bus}
}

func (b *Broadcaster) publish(room string, msgType MessageType, payload map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ev := Event{Room: room, Type: msgType, Payload: payload}
	if err := b.bus.Publish(ctx, ev); err != nil {
		log.Printf("📡 [Broadcast] Failed to publish %s to %s: %v", msgType, room, err)
	}
}

// ============================================
// Project Broadcasting
// ============================================

// Project events go to the shared list room and to the project's own room.
func (b *Broadcaster) BroadcastProjectCreated(projectID int64, project map[string]interface{}) {
	b.publish(RoomProjects, MessageProjectCreated, project)
	b.publish(ProjectRoom(projectID), MessageProjectCreated, project)
}

func (b *Broadcaster) BroadcastProjectUpdated(projectID int64, changes []string) {
	payload := map[string]interface{}{
		"project_id":     projectID,
		"changed_fields": changes,
	}
	b.publish(RoomProjects, MessageProjectUpdated, payload)
	b.publish(ProjectRoom(projectID), MessageProjectUpdated, payload)
}

func (b *Broadcaster) BroadcastProjectDeleted(projectID int64) {
	payload := map[string]interface{}{"project_id": projectID}
	b.publish(RoomProjects, MessageProjectDeleted, payload)
	b.publish(ProjectRoom(projectID), MessageProjectDeleted, payload)
}

// ============================================
// Task Broadcasting
// ============================================

// BroadcastTaskCreated broadcasts task creation to the project room
func (b *Broadcaster) BroadcastTaskCreated(projectID int64, task map[string]interface{}) {
	b.publish(ProjectRoom(projectID), MessageTaskCreated, task)
}

// BroadcastTaskUpdated broadcasts task updates to the project room
func (b *Broadcaster) BroadcastTaskUpdated(projectID, taskID int64, changes []string) {
	b.publish(ProjectRoom(projectID), MessageTaskUpdated, map[string]interface{}{
		"task_id":        taskID,
		"project_id":     projectID,
		"changed_fields": changes,
	})
}

// BroadcastTaskDeleted broadcasts task deletion to the project room
func (b *Broadcaster) BroadcastTaskDeleted(projectID, taskID int64) {
	b.publish(ProjectRoom(projectID), MessageTaskDeleted, map[string]interface{}{
		"task_id":    taskID,
		"project_id": projectID,
	})
}

// ============================================
// User Broadcasting
// ============================================

// SendToUser delivers a personal event to the user's room.
func (b *Broadcaster) SendToUser(userID int64, msgType MessageType, payload map[string]interface{}) {
	b.publish(UserRoom(userID), msgType, payload)
}
