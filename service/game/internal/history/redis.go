package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel e' il canale pub/sub degli eventi di gioco.
const DefaultChannel = "cards:events"

// event e' il messaggio JSON pubblicato su Redis.
type event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// RedisPublisher pubblica gli eventi di gioco su un canale Redis.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher usa DefaultChannel se channel e' vuoto.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) RecordDraw(ctx context.Context, ev DrawEvent) error {
	return p.publish(ctx, "draw", ev)
}

func (p *RedisPublisher) RecordDuel(ctx context.Context, ev DuelEvent) error {
	return p.publish(ctx, "duel", ev)
}

// Subscribe apre una sottoscrizione al canale degli eventi.
func (p *RedisPublisher) Subscribe(ctx context.Context) *redis.PubSub {
	return p.client.Subscribe(ctx, p.channel)
}

func (p *RedisPublisher) publish(ctx context.Context, kind string, data any) error {
	payload, err := json.Marshal(event{Type: kind, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", kind, err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s event: %w", kind, err)
	}
	return nil
}
