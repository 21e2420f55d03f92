package rabbitmq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type EventType string

const (
	UserCreated    EventType = "user.created"
	UserUpdated    EventType = "user.updated"
	UserDeleted    EventType = "user.deleted"
	ProductCreated EventType = "product.created"
	ProductUpdated EventType = "product.updated"
	ProductDeleted EventType = "product.deleted"
	OrderCreated   EventType = "order.created"
	ProductAdded   EventType = "order.product_added"
	ProductRemoved EventType = "order.product_removed"
)

// Event is the envelope published for every entity lifecycle change.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// Publisher publishes lifecycle events to the "events" topic exchange with
// the event type as routing key. A Publisher over a nil channel is valid and
// drops every event, so the API can run without a broker.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

func NewEvent(eventType EventType, payload any) Event {
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func (p *Publisher) Publish(eventType EventType, payload any) error {
	if p == nil || p.ch == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	body, err := json.Marshal(NewEvent(eventType, payload))
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return err
	}

	err = p.ch.PublishWithContext(
		ctx,
		"events",          // exchange
		string(eventType), // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Printf("Error publishing %s event: %v", eventType, err)
		return err
	}

	return nil
}
