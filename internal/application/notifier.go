package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/votiy-api/internal/domain/entity"
	"github.com/oksasatya/votiy-api/pkg/helpers"
	"github.com/oksasatya/votiy-api/pkg/mailer"
	mailtpl "github.com/oksasatya/votiy-api/pkg/mailer/templates"
)

// RequestMeta describes the client behind a request, for notification emails.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// Notifier queues account emails. A nil Notifier or one without a publisher does nothing.
type Notifier struct {
	Pub     helpers.Publisher
	AppName string
	AppURL  string
	Logger  logrus.FieldLogger
	now     func() time.Time
}

func NewNotifier(pub helpers.Publisher, appName, appURL string, logger logrus.FieldLogger) *Notifier {
	return &Notifier{Pub: pub, AppName: appName, AppURL: appURL, Logger: logger, now: time.Now}
}

func (n *Notifier) enabled() bool { return n != nil && n.Pub != nil }

func (n *Notifier) Welcome(ctx context.Context, u *entity.User) {
	if !n.enabled() {
		return
	}
	data := mailtpl.NewWelcomeData(n.AppName, u.FirstName, u.LastName, u.Email, mailtpl.WithAppURL(n.AppURL))
	n.publish(ctx, mailer.NewTemplateJob(u.Email, mailtpl.Welcome, data))
}

func (n *Notifier) PasswordChanged(ctx context.Context, u *entity.User, meta RequestMeta) {
	if !n.enabled() {
		return
	}
	data := mailtpl.NewPasswordChangedData(n.AppName, u.FirstName, u.LastName, u.Email,
		mailtpl.WithTime(n.now()),
		mailtpl.WithIP(meta.IP),
		mailtpl.WithUserAgent(meta.UserAgent),
	)
	n.publish(ctx, mailer.NewTemplateJob(u.Email, mailtpl.PasswordChanged, data))
}

// publish never fails the caller; a lost email is logged only.
func (n *Notifier) publish(ctx context.Context, job mailer.EmailJob) {
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := n.Pub.PublishJSON(c, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithField("template", job.Template).Warn("enqueue email failed")
	}
}
