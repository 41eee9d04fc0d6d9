package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Lee196444/Text2toss-app/internal/usecase/interfaces"
	"github.com/Lee196444/Text2toss-app/pkg/phone"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// SMSRoutingKey is the topic key outbound texts are published under.
const SMSRoutingKey = "notification.sms"

// SMSMessage is the body published for a downstream SMS worker.
type SMSMessage struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Body      string    `json:"body"`
	MediaURL  string    `json:"media_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type jsonPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// AMQPNotifier hands texts to a message broker instead of calling the SMS provider
// inline. Delivery status is "queued"; the worker owns the provider call.
type AMQPNotifier struct {
	pub jsonPublisher
}

var _ interfaces.INotifier = (*AMQPNotifier)(nil)

func NewAMQPNotifier(pub jsonPublisher) *AMQPNotifier {
	return &AMQPNotifier{pub: pub}
}

func (n *AMQPNotifier) Send(ctx context.Context, msg interfaces.Notification) (interfaces.DeliveryResult, error) {
	m := SMSMessage{
		ID:        uuid.NewString(),
		To:        msg.To,
		Body:      msg.Body,
		MediaURL:  msg.MediaURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.pub.PublishJSON(ctx, SMSRoutingKey, m); err != nil {
		log.Printf("[notify][amqp] publish failed to=%s err=%v", phone.Mask(msg.To), err)
		return interfaces.DeliveryResult{}, err
	}
	return interfaces.DeliveryResult{ID: m.ID, Status: "queued"}, nil
}

// Publisher owns one connection and channel to a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	log.Printf("[notify][amqp] publisher ready exchange=%s", exchange)
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
