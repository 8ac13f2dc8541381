package events

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const (
	logQueue      = "q.orders.log"
	logBindingKey = "order.*"
)

// StartEventLogger binds a durable queue to every order event and logs what
// arrives until ctx is cancelled or the delivery channel closes.
func StartEventLogger(ctx context.Context, ch Channel, logger *log.Entry) error {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	logger = logger.WithField("component", "event-logger")

	q, err := ch.QueueDeclare(
		logQueue, // name
		true,     // durable
		false,    // delete when unused
		false,    // exclusive
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue %q: %w", logQueue, err)
	}

	if err := ch.QueueBind(q.Name, logBindingKey, Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %q: %w", logQueue, err)
	}

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return fmt.Errorf("consume %q: %w", logQueue, err)
	}

	logger.WithField("binding", logBindingKey).Info("event logger started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				logger.Info("delivery channel closed")
				return nil
			}
			logger.WithFields(log.Fields{
				"routing_key": d.RoutingKey,
				"body":        string(d.Body),
			}).Info("received order event")
		}
	}
}
