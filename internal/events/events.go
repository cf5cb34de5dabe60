// Package events publishes domain events to RabbitMQ. Publishing is best
// effort: failures are logged and returned, callers are free to ignore them
package events

import (
	"context"       // Context for broker calls
	"encoding/json" // JSON encoding
	"errors"        // Error inspection
	"fmt"           // Error wrapping
	"sync"          // Mutex
	"time"          // Time handling

	amqp "github.com/rabbitmq/amqp091-go" // RabbitMQ client
	"github.com/sirupsen/logrus"          // Logrus for structured logging
)

// Routing keys, also used as queue names
const (
	TravelCreated = "travel.created"
	TravelUpdated = "travel.updated"
	TourCreated   = "tour.created"
	TourUpdated   = "tour.updated"
)

// Queues lists every queue the publisher declares
var Queues = []string{TravelCreated, TravelUpdated, TourCreated, TourUpdated}

// TravelEvent is published when a travel is created or updated
type TravelEvent struct {
	TravelID     uint   `json:"travel_id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	IsPublic     bool   `json:"is_public"`
	NumberOfDays uint   `json:"number_of_days"`
	ActorID      uint   `json:"actor_id"`
	OccurredAt   string `json:"occurred_at"`
}

// TourEvent is published when a tour is created or updated
type TourEvent struct {
	TourID     uint   `json:"tour_id"`
	TravelID   uint   `json:"travel_id"`
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	PriceCents int64  `json:"price_cents"`
	ActorID    uint   `json:"actor_id"`
	OccurredAt string `json:"occurred_at"`
}

// Publisher sends one event under a routing key
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Nop discards every event. It is used when no broker is configured
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

// While the broker is down, publishers spend at most one dialTimeout per retryAfter
const (
	dialTimeout = 2 * time.Second
	retryAfter  = 10 * time.Second
)

// ErrUnavailable is returned without dialing while a previous dial failure is recent
var ErrUnavailable = errors.New("rabbitmq unavailable")

// AMQP publishes persistent JSON messages on the default exchange. The
// connection is opened lazily and reopened after it closes
type AMQP struct {
	url         string
	dialTimeout time.Duration
	retryAfter  time.Duration
	now         func() time.Time

	mu        sync.Mutex
	conn      *amqp.Connection
	ch        *amqp.Channel
	downUntil time.Time // no dial attempts before this instant
}

// NewAMQP returns a publisher for url, or Nop when url is empty
func NewAMQP(url string) Publisher {
	if url == "" {
		return Nop{}
	}
	return &AMQP{url: url, dialTimeout: dialTimeout, retryAfter: retryAfter, now: time.Now}
}

func (p *AMQP) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.now().Before(p.downUntil) {
			return nil, ErrUnavailable
		}
		timeout := p.dialTimeout
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
			timeout = time.Until(deadline)
		}
		conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(timeout)})
		if err != nil {
			p.downUntil = p.now().Add(p.retryAfter)
			return nil, fmt.Errorf("dial: %w", err)
		}
		p.conn = conn
		p.downUntil = time.Time{}
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	// Durable so messages survive broker restarts
	for _, q := range Queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("declare %s: %w", q, err)
		}
	}
	p.ch = ch
	return ch, nil
}

// Publish marshals event and sends it to the queue named key
func (p *AMQP) Publish(ctx context.Context, key string, event any) error {
	body, err := json.Marshal(event) // Marshal event to JSON
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	p.mu.Lock() // Channels are not safe for concurrent publishing
	defer p.mu.Unlock()
	ch, err := p.channel(ctx)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("rabbitmq unavailable")
		return err
	}
	err = ch.PublishWithContext(ctx, "", key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("rabbitmq publish failed")
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

// Close releases the channel and connection
func (p *AMQP) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Recorder keeps published events in memory. Tests use it as a Publisher
type Recorder struct {
	mu     sync.Mutex
	Events []Recorded
}

// Recorded is one event captured by a Recorder
type Recorded struct {
	Key   string
	Event any
}

func (r *Recorder) Publish(_ context.Context, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Recorded{Key: key, Event: event})
	return nil
}

// Keys returns the routing keys published so far, in order
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, len(r.Events))
	for i, e := range r.Events {
		keys[i] = e.Key
	}
	return keys
}
