package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "connect4:game:"

// NewClient connects to Redis. A nil client and nil error mean Redis is
// not configured or not reachable and the server runs without pub/sub.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		log.Println("[REDIS] REDIS_URL not set, event pub/sub disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis: %v. Event pub/sub disabled.", err)
		client.Close()
		return nil, nil
	}

	log.Println("[REDIS] Connected successfully")
	return client, nil
}

func ChannelName(gameID string) string {
	return channelPrefix + gameID
}

// EventPublisher publishes every game message as JSON on the game's channel.
type EventPublisher struct {
	client *redis.Client
}

func NewEventPublisher(client *redis.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

func (p *EventPublisher) Publish(ctx context.Context, gameID string, message domain.ServerMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", message.Type, err)
	}
	if err := p.client.Publish(ctx, ChannelName(gameID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", ChannelName(gameID), err)
	}
	return nil
}

// Subscribe streams messages for one game until ctx is cancelled. It
// returns once Redis has confirmed the subscription, so nothing published
// after it returns is missed. Payloads that do not decode are logged and skipped.
func (p *EventPublisher) Subscribe(ctx context.Context, gameID string) (<-chan domain.ServerMessage, error) {
	pubsub := p.client.Subscribe(ctx, ChannelName(gameID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", ChannelName(gameID), err)
	}
	out := make(chan domain.ServerMessage)

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var decoded domain.ServerMessage
				if err := json.Unmarshal([]byte(msg.Payload), &decoded); err != nil {
					log.Printf("[REDIS] Dropping undecodable message on %s: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- decoded:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (p *EventPublisher) Close() error {
	return p.client.Close()
}
