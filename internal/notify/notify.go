// Package notify fans session updates out to a RabbitMQ topic exchange so
// other services can follow an interview as it happens.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const Exchange = "session_updates"

type Publisher interface {
	Publish(sessionID string, update map[string]any) error
}

// Nop drops every update. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(string, map[string]any) error { return nil }

type AMQP struct {
	conn *amqp.Connection
}

// DialAMQP connects to url and declares the session update exchange.
func DialAMQP(url string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &AMQP{conn: conn}, nil
}

func (p *AMQP) Publish(sessionID string, update map[string]any) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := Encode(update, time.Now())
	if err != nil {
		return err
	}

	return ch.Publish(
		Exchange,
		RoutingKey(sessionID),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *AMQP) Close() error {
	return p.conn.Close()
}

func RoutingKey(sessionID string) string {
	return fmt.Sprintf("session.%s", sessionID)
}

// Encode marshals update, stamping it with now unless it already carries a
// timestamp.
func Encode(update map[string]any, now time.Time) ([]byte, error) {
	out := make(map[string]any, len(update)+1)
	for k, v := range update {
		out[k] = v
	}
	if _, ok := out["timestamp"]; !ok {
		out["timestamp"] = now
	}
	body, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session update: %w", err)
	}
	return body, nil
}
