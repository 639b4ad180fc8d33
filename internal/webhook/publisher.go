package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	webhookQueueKey = "dispatch_webhook_events"
)

// Типы событий жизненного цикла инцидента
const (
	EventIncidentDispatched = "incident.dispatched"
	EventIncidentOnScene    = "incident.on_scene"
	EventIncidentResolved   = "incident.resolved"
)

// Event - событие вебхука о переходе инцидента
type Event struct {
	ID         uuid.UUID               `json:"id"`
	Type       string                  `json:"type"`
	IncidentID string                  `json:"incident_id"`
	VehicleID  string                  `json:"vehicle_id,omitempty"`
	Priority   models.IncidentPriority `json:"priority,omitempty"`
	Critical   bool                    `json:"critical,omitempty"`
	ETAMinutes int                     `json:"eta_minutes,omitempty"`
	Rationale  string                  `json:"rationale,omitempty"`
	Timestamp  time.Time               `json:"timestamp"`
}

// NewEvent создает событие с уникальным id и текущим временем
func NewEvent(eventType, incidentID string) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		IncidentID: incidentID,
		Timestamp:  time.Now(),
	}
}

// Publisher - интерфейс для публикации вебхуков
//
//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher - реализация Publisher, использующая очередь в Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в левую часть списка, воркер читает BRPOP с правой
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

// NoopPublisher используется, когда Redis или URL вебхука не настроены
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(_ context.Context, _ Event) error {
	return nil
}
