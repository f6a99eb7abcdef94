// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/nurture/internal/logging"
	"github.com/tomtom215/nurture/internal/metrics"
	"github.com/tomtom215/nurture/internal/recommend/storage"
)

// TopicInteractionLogged carries InteractionLogged payloads.
const TopicInteractionLogged = "interaction.logged"

// Metadata keys set on every message.
const (
	MetadataEventType = "event_type"
	MetadataRequestID = "request_id"
)

// ErrBusClosed is returned when publishing on a closed bus.
var ErrBusClosed = errors.New("event bus is closed")

// InteractionLogged is published after an interaction has been durably
// logged and counted.
type InteractionLogged struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Feedback  float64   `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
}

// Config configures the in-process bus.
type Config struct {
	// OutputChannelBuffer is the per-subscriber buffer.
	// Default: 256
	OutputChannelBuffer int64 `koanf:"buffer"`

	// BlockPublishUntilSubscriberAck makes Publish wait for consumers.
	// Default: false
	BlockPublishUntilSubscriberAck bool `koanf:"block_publish"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		OutputChannelBuffer: 256,
	}
}

// Bus is an in-process pub/sub backed by watermill's Go channel transport.
// Delivery is at-most-once and not persisted: events are notifications
// derived from the interaction log, which remains authoritative.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// NewBus creates a bus.
func NewBus(cfg Config, logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if cfg.OutputChannelBuffer <= 0 {
		cfg.OutputChannelBuffer = DefaultConfig().OutputChannelBuffer
	}

	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            cfg.OutputChannelBuffer,
			BlockPublishUntilSubscriberAck: cfg.BlockPublishUntilSubscriberAck,
		}, logger),
		logger: logger,
	}
}

// Publisher returns the underlying watermill publisher.
func (b *Bus) Publisher() message.Publisher {
	return b.pubsub
}

// Subscriber returns the underlying watermill subscriber.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// PublishInteraction publishes an InteractionLogged event. It satisfies the
// recommend engine's InteractionPublisher.
//
//nolint:gocritic // hugeParam: rec passed by value for immutability
func (b *Bus) PublishInteraction(ctx context.Context, rec storage.Interaction) error {
	event := InteractionLogged{
		EventID:   uuid.NewString(),
		UserID:    rec.UserID,
		ItemID:    rec.ItemID,
		Feedback:  rec.Feedback,
		Timestamp: rec.Timestamp,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal interaction event: %w", err)
	}

	msg := message.NewMessage(event.EventID, payload)
	msg.Metadata.Set(MetadataEventType, TopicInteractionLogged)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataRequestID, id)
	}

	return b.publish(TopicInteractionLogged, msg)
}

func (b *Bus) publish(topic string, msgs ...*message.Message) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	if err := b.pubsub.Publish(topic, msgs...); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	metrics.RecordEventPublished(topic)
	return nil
}

// Close closes the bus. Subscribers' channels are closed.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}

// DecodeInteractionLogged decodes an InteractionLogged payload.
func DecodeInteractionLogged(msg *message.Message) (InteractionLogged, error) {
	var event InteractionLogged
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return InteractionLogged{}, fmt.Errorf("decode interaction event %s: %w", msg.UUID, err)
	}
	return event, nil
}
