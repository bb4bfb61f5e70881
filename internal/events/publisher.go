package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"complaint-intake-backend/internal/model"
)

// ComplaintCreatedMessage is the wire format of a complaint.created event.
// Downstream workflows that own status transitions consume these.
type ComplaintCreatedMessage struct {
	ComplaintID  int64  `json:"complaint_id"`
	Reference    string `json:"reference"`
	MemberID     *int64 `json:"member_id"`
	MachineID    int64  `json:"machine_id"`
	LocationName string `json:"location_name"`
	Type         int    `json:"type"`
	Status       string `json:"status"`
}

// Publisher publishes complaint.created events to a durable AMQP queue.
type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewPublisher connects to the broker and declares the queue and its DLQ.
func NewPublisher(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	dlq := queue + ".dlq"
	if _, err := ch.QueueDeclare(
		dlq,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	// Main queue: dead-letter to DLQ on reject/nack(requeue=false).
	if _, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": dlq,
		},
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// ComplaintCreated publishes one persistent event for a filed complaint.
func (p *Publisher) ComplaintCreated(ctx context.Context, c *model.Complaint) error {
	body, err := json.Marshal(ComplaintCreatedMessage{
		ComplaintID:  c.ComplaintID,
		Reference:    c.Reference,
		MemberID:     c.MemberID,
		MachineID:    c.MachineID,
		LocationName: c.LocationName,
		Type:         int(c.Type),
		Status:       c.Status,
	})
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(cctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
}
