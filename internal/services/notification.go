package services

import "log"

// NotificationSink delivers customer-facing events (order confirmed, ready
// for pickup, ...). Delivery is fire-and-forget: a sink failure must never
// fail the order operation that triggered it.
type NotificationSink interface {
	Notify(customerIdentifier string, event string) error
}

// LogNotificationSink writes notifications to the process log. Used in
// development and as a safe default when no broker is configured.
type LogNotificationSink struct{}

// Notify logs the event.
func (LogNotificationSink) Notify(customerIdentifier string, event string) error {
	log.Printf("Notification for %s: %s", customerIdentifier, event)
	return nil
}

// EventPublisher publishes order lifecycle events to the message broker.
// Satisfied by *rabbitmq.Client.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
