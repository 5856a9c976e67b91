package notifications

import (
	"context"
	"errors"
	"time"

	"github.com/dobarx/hivemind/backend/internal/mailqueue"
	"github.com/dobarx/hivemind/backend/internal/models"
	"github.com/dobarx/hivemind/backend/internal/repositories"
	"github.com/dobarx/hivemind/backend/pkg/locale"
	"go.uber.org/zap"
)

// dispatchTimeout bounds every transport call made after the notification
// row is committed. Delivery is best-effort; the row is the source of truth.
const dispatchTimeout = 5 * time.Second

// SendInput describes a notification to record and deliver. Target is the
// recipient; a nil Sender marks a system notification.
type SendInput struct {
	Type    string
	Target  string
	Sender  *string
	Sub     *string
	Post    *string
	Comment *string
	Content *string
}

// EngineParams collects the engine's injected dependencies. Push, Socket and
// Emails may be nil; the corresponding channel is then skipped.
type EngineParams struct {
	Notifications repositories.NotificationRepository
	Blocks        repositories.BlockRepository
	Users         repositories.UserRepository
	Subs          repositories.SubRepository
	Posts         repositories.PostRepository
	Push          PushSender
	Socket        SocketPublisher
	Emails        EmailQueue
	Translator    *locale.Translator
	SubPrefix     string
	IconURL       string
	Logger        *zap.Logger
}

// Engine records notifications, serves the enriched paginated history,
// reconciles read/expiry state and drives multi-channel dispatch.
type Engine struct {
	notifications repositories.NotificationRepository
	blocks        repositories.BlockRepository
	users         repositories.UserRepository
	subs          repositories.SubRepository
	posts         repositories.PostRepository
	push          PushSender
	socket        SocketPublisher
	emails        EmailQueue
	translator    *locale.Translator
	subPrefix     string
	iconURL       string
	log           *zap.Logger
}

// NewEngine constructs the notification engine.
func NewEngine(p EngineParams) *Engine {
	if p.Translator == nil {
		p.Translator = locale.NewTranslator("")
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return &Engine{
		notifications: p.Notifications,
		blocks:        p.Blocks,
		users:         p.Users,
		subs:          p.Subs,
		posts:         p.Posts,
		push:          p.Push,
		socket:        p.Socket,
		emails:        p.Emails,
		translator:    p.Translator,
		subPrefix:     p.SubPrefix,
		iconURL:       p.IconURL,
		log:           p.Logger,
	}
}

// Send persists the notification and, unless the recipient blocks the
// sender, fans delivery out over the configured channels. The row is stored
// before any delivery decision: history does not depend on delivery outcome.
func (e *Engine) Send(ctx context.Context, in SendInput) error {
	if in.Target == "" {
		return errors.New("notifications: target is required")
	}
	if in.Type == "" {
		return errors.New("notifications: type is required")
	}

	notification := models.Notification{
		Type:      in.Type,
		TargetID:  in.Target,
		SenderID:  in.Sender,
		SubID:     in.Sub,
		PostID:    in.Post,
		CommentID: in.Comment,
		Content:   in.Content,
	}
	if err := e.notifications.Create(ctx, &notification); err != nil {
		return err
	}

	// System notifications are never blocked.
	if in.Sender != nil {
		blocked, err := e.blocks.IsBlockedForDelivery(ctx, *in.Sender, in.Target, in.Sub)
		if err != nil {
			return err
		}
		if blocked {
			// The row stays; the retrieval filter keeps it invisible.
			return nil
		}
	}

	e.dispatch(in)
	return nil
}

// dispatch pushes the already-persisted notification through the live
// socket, push and email channels. Failures are logged and swallowed; a
// transport must never undo or delay the committed row.
func (e *Engine) dispatch(in SendInput) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	count, err := e.notifications.CountUnread(ctx, in.Target)
	if err != nil {
		e.log.Warn("unread count lookup failed, skipping dispatch",
			zap.String("target_id", in.Target), zap.Error(err))
		return
	}

	if e.socket != nil {
		e.socket.Broadcast(in.Target, Event{Event: "notification", Count: count})
	}

	if e.push == nil && e.emails == nil {
		return
	}

	title, body := composeMessage(e.translator, e.subPrefix, in.Type,
		e.resolveSubName(ctx, in.Sub),
		e.resolveSenderName(ctx, in.Sender),
		e.resolvePostTitle(ctx, in.Post))

	if e.push != nil {
		message := PushMessage{
			Type:  "notification",
			Title: title,
			Body:  body,
			Badge: e.iconURL,
			Count: count,
		}
		if err := e.push.SendTopicMessage(ctx, in.Target, message); err != nil {
			e.log.Warn("push delivery failed",
				zap.String("target_id", in.Target), zap.Error(err))
		}
	}

	if e.emails != nil {
		email := mailqueue.EmailNotification{
			UserID:  in.Target,
			Subject: title,
			Body:    body,
		}
		if err := e.emails.Enqueue(ctx, email); err != nil {
			e.log.Warn("email forwarding enqueue failed",
				zap.String("target_id", in.Target), zap.Error(err))
		}
	}
}

// The resolve helpers panic on a missing entity: Send's arguments imply the
// ids exist, so a dangling reference here is a programmer error.

func (e *Engine) resolveSenderName(ctx context.Context, senderID *string) string {
	if senderID == nil {
		return ""
	}
	user, err := e.users.GetUserByID(ctx, *senderID)
	if err != nil {
		e.log.Panic("notification sender lookup failed",
			zap.String("sender_id", *senderID), zap.Error(err))
	}
	return user.Name
}

func (e *Engine) resolveSubName(ctx context.Context, subID *string) string {
	if subID == nil {
		return ""
	}
	sub, err := e.subs.GetSubByID(ctx, *subID)
	if err != nil {
		e.log.Panic("notification sub lookup failed",
			zap.String("sub_id", *subID), zap.Error(err))
	}
	return sub.Name
}

func (e *Engine) resolvePostTitle(ctx context.Context, postID *string) string {
	if postID == nil {
		return ""
	}
	post, err := e.posts.GetPostByID(ctx, *postID)
	if err != nil {
		e.log.Panic("notification post lookup failed",
			zap.String("post_id", *postID), zap.Error(err))
	}
	return post.Title
}

// List returns one 50-row page of the viewer's enriched notification
// history, newest first. An out-of-range page yields an empty slice.
func (e *Engine) List(ctx context.Context, userID string, page int) ([]models.NotificationView, error) {
	return e.notifications.ListForUser(ctx, userID, page)
}

// UnreadCount reports how many of the user's notifications are unread.
func (e *Engine) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return e.notifications.CountUnread(ctx, userID)
}

// MarkRead reconciles the user's notification state. When visible carries
// the user's fresh first page, anything older than the retention window that
// is not on that page is pruned first; nothing on screen ever disappears.
// Every unread notification is then stamped read. Idempotent.
func (e *Engine) MarkRead(ctx context.Context, userID string, visible []models.NotificationView) error {
	if len(visible) > 0 {
		keep := make([]uint, 0, len(visible))
		for _, view := range visible {
			keep = append(keep, view.ID)
		}
		if err := e.notifications.DeleteExpired(ctx, userID, keep); err != nil {
			return err
		}
	}
	return e.notifications.MarkAllRead(ctx, userID)
}
