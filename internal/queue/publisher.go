package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"
)

// BookingsQueue is the durable queue booking events are routed to.
const BookingsQueue = "shareit.bookings"

const dialTimeout = 3 * time.Second

// Publisher sends booking events to RabbitMQ.  It dials per publish;
// booking traffic is low and this keeps the server free of connection
// state.
type Publisher struct {
    url string
    log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
    return &Publisher{url: url, log: log}
}

// PublishBookingEvent publishes ev as a persistent message.  Errors are
// returned to the caller, which decides whether to log them.
func (p *Publisher) PublishBookingEvent(ctx context.Context, ev BookingEvent) error {
    conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
    if err != nil {
        return fmt.Errorf("rabbitmq dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("rabbitmq channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(
        BookingsQueue, // name
        true,          // durable
        false,         // autoDelete
        false,         // exclusive
        false,         // noWait
        nil,           // args
    ); err != nil {
        return fmt.Errorf("rabbitmq queue declare: %w", err)
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Type:         string(ev.Type),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", BookingsQueue, false, false, pub); err != nil {
        return fmt.Errorf("rabbitmq publish: %w", err)
    }
    p.log.Debug("booking event published", zap.String("type", string(ev.Type)), zap.Int64("booking_id", ev.BookingID))
    return nil
}
