package notifications

import (
	"context"
	"strconv"

	"firebase.google.com/go/v4/messaging"
)

// FCMSender delivers push messages over Firebase Cloud Messaging, addressing
// each recipient through their per-user topic.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender wraps an initialized messaging client.
func NewFCMSender(client *messaging.Client) *FCMSender {
	return &FCMSender{client: client}
}

// SendTopicMessage publishes a data message to every device subscribed to
// the topic.
func (s *FCMSender) SendTopicMessage(ctx context.Context, topic string, message PushMessage) error {
	_, err := s.client.Send(ctx, &messaging.Message{
		Topic: topic,
		Data: map[string]string{
			"type":  message.Type,
			"title": message.Title,
			"body":  message.Body,
			"badge": message.Badge,
			"count": strconv.FormatInt(message.Count, 10),
		},
	})
	return err
}
