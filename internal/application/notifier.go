package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/pkg/mailer"
	mailtpl "github.com/oksasatya/skillswap-api/pkg/mailer/templates"
	"github.com/oksasatya/skillswap-api/pkg/metrics"
)

// Publisher puts a JSON body on the notification queue. helpers.RabbitPublisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Notifier turns domain events into email jobs. Delivery is best effort:
// failures are logged and counted, never returned. A nil *Notifier is a no-op.
type Notifier struct {
	Publisher Publisher
	Logger    *logrus.Logger
	Metrics   *metrics.Metrics
	AppName   string
	AppURL    string
	Timeout   time.Duration
}

func NewNotifier(pub Publisher, logger *logrus.Logger, m *metrics.Metrics, appName, appURL string) *Notifier {
	return &Notifier{
		Publisher: pub,
		Logger:    logger,
		Metrics:   m,
		AppName:   appName,
		AppURL:    appURL,
		Timeout:   3 * time.Second,
	}
}

// RequestReceived tells the recipient about a new request.
func (n *Notifier) RequestReceived(ctx context.Context, req *entity.SwapRequest, from, to *PublicUser) {
	if to == nil || from == nil {
		return
	}
	n.publish(ctx, to, mailtpl.SwapRequestReceived,
		mailtpl.WithActor(from.Name),
		mailtpl.WithRequest(n.appURL(), req.ID, req.Message),
		mailtpl.WithTime(req.CreatedAt),
	)
}

// StatusChanged tells the sender that the recipient set a new status.
func (n *Notifier) StatusChanged(ctx context.Context, req *entity.SwapRequest, from, to *PublicUser) {
	if to == nil || from == nil {
		return
	}
	n.publish(ctx, from, mailtpl.SwapRequestStatusChanged,
		mailtpl.WithActor(to.Name),
		mailtpl.WithStatus(string(req.Status)),
		mailtpl.WithRequest(n.appURL(), req.ID, req.Message),
		mailtpl.WithTime(req.UpdatedAt),
	)
}

// MessagePosted tells the other participant about a new message.
func (n *Notifier) MessagePosted(ctx context.Context, req *entity.SwapRequest, msg *entity.Message, sender, other *PublicUser) {
	if sender == nil || other == nil {
		return
	}
	n.publish(ctx, other, mailtpl.RequestMessage,
		mailtpl.WithActor(sender.Name),
		mailtpl.WithMessageText(msg.Text),
		mailtpl.WithRequest(n.appURL(), req.ID, req.Message),
		mailtpl.WithTime(msg.CreatedAt),
	)
}

func (n *Notifier) appURL() string {
	if n == nil {
		return ""
	}
	return n.AppURL
}

func (n *Notifier) publish(ctx context.Context, to *PublicUser, template string, opts ...mailtpl.Option) {
	if n == nil || n.Publisher == nil {
		return
	}
	job := mailer.EmailJob{
		To:       to.Email,
		Template: template,
		Data:     mailtpl.ToMap(mailtpl.New(n.AppName, to.Name, to.Email, opts...)),
	}

	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := n.Publisher.PublishJSON(c, job); err != nil {
		n.Metrics.NotificationPublished(template, "error")
		if n.Logger != nil {
			n.Logger.WithError(err).WithFields(logrus.Fields{
				"template": template,
				"user_id":  to.ID,
			}).Warn("notification publish failed")
		}
		return
	}
	n.Metrics.NotificationPublished(template, "ok")
}

// Enabled reports whether notifications are published at all.
func (n *Notifier) Enabled() bool {
	return n != nil && n.Publisher != nil
}
