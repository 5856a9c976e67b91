package notifications

import (
	"context"

	"github.com/dobarx/hivemind/backend/internal/mailqueue"
	"github.com/dobarx/hivemind/backend/internal/models"
	"github.com/dobarx/hivemind/backend/pkg/locale"
)

// PushMessage is the structured payload handed to the push transport.
type PushMessage struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Badge string `json:"badge"` // site icon URL
	Count int64  `json:"count"` // recipient's unread count
}

// PushSender delivers a push message to every device subscribed to a topic.
// The topic is the recipient's user id.
type PushSender interface {
	SendTopicMessage(ctx context.Context, topic string, message PushMessage) error
}

// SocketPublisher publishes a live event to a user's open sockets.
type SocketPublisher interface {
	Broadcast(userID string, event Event)
}

// EmailQueue spools a notification for forwarded email delivery.
type EmailQueue interface {
	Enqueue(ctx context.Context, email mailqueue.EmailNotification) error
}

// composeMessage builds the per-type push title and body. Types without
// dedicated copy get the generic fallback, so new notification types degrade
// gracefully until their copy lands.
func composeMessage(tr *locale.Translator, subPrefix, notificationType, subName, senderName, postTitle string) (title, body string) {
	switch notificationType {
	case models.NotificationPostReply:
		title = tr.Translate("Post reply in %s/%s", subPrefix, subName)
		body = tr.Translate("%s replied to your post titled %s", senderName, postTitle)
	case models.NotificationCommentReply:
		title = tr.Translate("Comment reply in %s/%s", subPrefix, subName)
		body = tr.Translate("%s replied to your comment in the post titled %s", senderName, postTitle)
	case models.NotificationPostMention, models.NotificationCommentMention:
		title = tr.Translate("You were mentioned in %s/%s", subPrefix, subName)
		body = tr.Translate("%s mentioned you in the post titled %s", senderName, postTitle)
	default:
		title = tr.Translate("New notification.")
		body = tr.Translate("You have a new notification.")
	}
	return title, body
}
