package mailqueue

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	collectionName = "email_notifications"
	drainBatchSize = 100
	drainTimeout   = 30 * time.Second
)

// EmailNotification is one spooled forwarded-email job (MongoDB).
type EmailNotification struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  string             `bson:"user_id" json:"user_id"`
	Subject string             `bson:"subject" json:"subject"`
	Body    string             `bson:"body" json:"body"`
	Queued  time.Time          `bson:"queued" json:"queued"`
}

// MailSender delivers one forwarded notification email. It resolves the
// recipient address itself; the queue only knows user ids.
type MailSender interface {
	Send(ctx context.Context, userID, subject, body string) error
}

// spool is the subset of *mongo.Collection the queue uses.
type spool interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// Queue spools forwarded email notifications in MongoDB and drains them on a
// cron schedule. A failed send leaves the document queued for the next run.
type Queue struct {
	collection spool
	sender     MailSender
	cron       *cron.Cron
	log        *zap.Logger
}

// NewQueue creates the email notification queue on the given database.
func NewQueue(db *mongo.Database, sender MailSender, log *zap.Logger) *Queue {
	if log == nil {
		log = zap.NewNop()
	}
	return &Queue{
		collection: db.Collection(collectionName),
		sender:     sender,
		cron:       cron.New(),
		log:        log,
	}
}

// Enqueue spools one email job. Safe to call from any goroutine.
func (q *Queue) Enqueue(ctx context.Context, email EmailNotification) error {
	if email.Queued.IsZero() {
		email.Queued = time.Now().UTC()
	}
	_, err := q.collection.InsertOne(ctx, email)
	return err
}

// Schedule starts the background drain on the given cron spec. Call once at
// startup.
func (q *Queue) Schedule(spec string) error {
	if _, err := q.cron.AddFunc(spec, q.deliverPending); err != nil {
		return err
	}
	q.cron.Start()
	return nil
}

// Stop halts the drain schedule and waits for a running drain to finish.
func (q *Queue) Stop() {
	<-q.cron.Stop().Done()
}

func (q *Queue) deliverPending() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	findOpts := options.Find().
		SetSort(bson.D{{Key: "queued", Value: 1}}).
		SetLimit(drainBatchSize)
	cursor, err := q.collection.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		q.log.Warn("email queue scan failed", zap.Error(err))
		return
	}

	var pending []EmailNotification
	if err := cursor.All(ctx, &pending); err != nil {
		q.log.Warn("email queue decode failed", zap.Error(err))
		return
	}

	for _, email := range pending {
		if err := q.sender.Send(ctx, email.UserID, email.Subject, email.Body); err != nil {
			q.log.Warn("forwarded email delivery failed",
				zap.String("user_id", email.UserID), zap.Error(err))
			continue
		}
		if _, err := q.collection.DeleteOne(ctx, bson.M{"_id": email.ID}); err != nil {
			q.log.Warn("email queue cleanup failed",
				zap.String("user_id", email.UserID), zap.Error(err))
		}
	}
}
