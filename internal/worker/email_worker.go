package worker

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-auth/pkg/helpers"
	"github.com/oksasatya/todolist-auth/pkg/mailer"
)

type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) (string, error)
}

type Archiver interface {
	Archive(ctx context.Context, m mailer.SentMail) (string, error)
}

// Outcome tells the consumer loop what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Requeue
	Drop
)

// EmailWorker renders queued EmailJobs, sends them and optionally archives the result.
type EmailWorker struct {
	Sender  Sender
	Archive Archiver
	Logger  *logrus.Logger
	now     func() time.Time
}

func NewEmailWorker(sender Sender, archive Archiver, logger *logrus.Logger) *EmailWorker {
	return &EmailWorker{Sender: sender, Archive: archive, Logger: logger, now: time.Now}
}

// Handle processes one message body. Malformed or unrenderable jobs are dropped;
// send failures are requeued.
func (w *EmailWorker) Handle(ctx context.Context, body []byte) Outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Error("bad email job")
		return Drop
	}
	log := w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template})
	if job.To == "" {
		log.Error("email job without recipient")
		return Drop
	}

	subject, text, html, err := helpers.RenderJob(&job)
	if err != nil {
		log.WithError(err).Error("render failed")
		return Drop
	}

	id, err := w.Sender.Send(ctx, job.To, subject, text, html)
	if err != nil {
		log.WithError(err).Warn("send failed")
		return Requeue
	}
	log.WithField("message_id", id).Info("email sent")

	if w.Archive != nil {
		sent := mailer.SentMail{
			To:        job.To,
			Template:  job.Template,
			Subject:   subject,
			Text:      text,
			HTML:      html,
			MessageID: id,
			SentAt:    w.now().UTC(),
		}
		if uri, err := w.Archive.Archive(ctx, sent); err != nil {
			log.WithError(err).Warn("archive failed")
		} else {
			log.WithField("uri", uri).Debug("email archived")
		}
	}
	return Ack
}

// Run consumes deliveries until ctx is done or the channel closes.
// A delivery that already failed once is dropped instead of requeued again.
func (w *EmailWorker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			switch w.Handle(ctx, d.Body) {
			case Ack:
				_ = d.Ack(false)
			case Requeue:
				if d.Redelivered {
					w.Logger.WithField("delivery_tag", d.DeliveryTag).Error("redelivered job failed again; dropping")
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Nack(false, true)
			default:
				_ = d.Nack(false, false)
			}
		}
	}
}
