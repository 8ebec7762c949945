package socket

import (
	"context"
	"encoding/json"
	"log"
	"strconv"

	"github.com/Marga-Ghale/synergysphere-backend/internal/db"
)

// EventsChannel is the Redis channel shared by every API instance.
const EventsChannel = "synergy:events"

// Event is a room message as it travels between instances.
type Event struct {
	Room    string                 `json:"room"`
	Type    MessageType            `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Exclude string                 `json:"exclude,omitempty"`
}

// Publisher moves events to the hubs that deliver them.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// LocalBus delivers straight to the in-process hub.
type LocalBus struct {
	hub *Hub
}

func NewLocalBus(hub *Hub) *LocalBus {
	return &LocalBus{hub: hub}
}

func (b *LocalBus) Publish(_ context.Context, ev Event) error {
	b.hub.Deliver(ev)
	return nil
}

// RedisBus publishes events on Redis; Run feeds every received event to the local hub.
type RedisBus struct {
	redis   *db.RedisDB
	hub     *Hub
	channel string
}

func NewRedisBus(redis *db.RedisDB, hub *Hub) *RedisBus {
	return &RedisBus{redis: redis, hub: hub, channel: EventsChannel}
}

func (b *RedisBus) Publish(ctx context.Context, ev Event) error {
	return b.redis.PublishJSON(ctx, b.channel, ev)
}

// Run blocks until ctx is cancelled or the subscription closes.
func (b *RedisBus) Run(ctx context.Context) {
	sub := b.redis.Subscribe(ctx, b.channel)
	defer sub.Close()

	log.Printf("[Bus] ✅ Subscribed to %s", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			log.Println("[Bus] Subscription stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				log.Println("[Bus] ⚠️ Subscription channel closed")
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[Bus] Dropping malformed event: %v", err)
				continue
			}
			b.hub.Deliver(ev)
		}
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
