package services

import (
	"encoding/json"
	"fmt"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const notificationQueue = "crm_notifications"

// NotificationService publishes integration events to the host CRM's
// notification queue over RabbitMQ.
type NotificationService struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewNotificationService() (*NotificationService, error) {
	host := getEnv("RABBITMQ_HOST", "localhost")
	port := getEnv("RABBITMQ_PORT", "5672")
	user := getEnv("RABBITMQ_USER", "guest")
	pass := getEnv("RABBITMQ_PASS", "guest")

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		notificationQueue, // name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	logrus.Info("Notification service connected to RabbitMQ")
	return &NotificationService{conn: conn, channel: channel}, nil
}

// PublishFollowupCreated publishes a follow-up-created event
func (s *NotificationService) PublishFollowupCreated(event FollowupCreatedEvent) error {
	body, err := json.Marshal(map[string]interface{}{
		"type":    "voicenter.followup.created",
		"payload": event,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return s.channel.Publish(
		"",                // exchange
		notificationQueue, // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Close closes the RabbitMQ connection
func (s *NotificationService) Close() {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
