package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
)

const Channel = "bookings.events"

// envelope is the wire shape published to redis: the event name plus
// the event's own JSON payload. Notification and cache-invalidation
// consumers subscribe to the channel out of process.
type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// RedisPublisher forwards drained domain events over redis pub/sub.
// Like the audit dispatcher, it works off a buffered channel and drops
// on overflow: eventing never fails a booking request.
type RedisPublisher struct {
	client *redis.Client
	queue  chan domain.Event
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	p := &RedisPublisher{
		client: client,
		queue:  make(chan domain.Event, 100),
	}

	go p.worker()
	return p
}

func (p *RedisPublisher) worker() {
	for ev := range p.queue {
		payload, err := json.Marshal(envelope{Event: ev.Name(), Payload: ev})
		if err != nil {
			log.Println("notify marshal error:", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := p.client.Publish(ctx, Channel, payload).Err(); err != nil {
			log.Println("notify publish error:", err)
		}
		cancel()
	}
}

func (p *RedisPublisher) Publish(ev domain.Event) {
	select {
	case p.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}

// NopPublisher is used when no redis address is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(domain.Event) {}

var (
	_ domain.EventPublisher = (*RedisPublisher)(nil)
	_ domain.EventPublisher = NopPublisher{}
)
