package mailer

import (
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/oksasatya/votiy-api/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (with Data) or Subject plus Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome", "password_changed"
	Data     map[string]any `json:"data,omitempty"`
}

var ErrEmptyRecipient = errors.New("email job has no recipient")

// NewTemplateJob builds a job rendered by the worker from an embedded template.
func NewTemplateJob(to, template string, data map[string]any) EmailJob {
	return EmailJob{To: to, Template: template, Data: data}
}

// Normalize trims the recipient and makes sure template data carries it.
func (j *EmailJob) Normalize() {
	j.To = strings.TrimSpace(j.To)
	j.Template = strings.ToLower(strings.TrimSpace(j.Template))
	if j.Template == "" {
		return
	}
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		j.Data["Email"] = j.To
	}
}

// Validate reports whether the job can be delivered.
func (j *EmailJob) Validate() error {
	if j.To == "" {
		return ErrEmptyRecipient
	}
	if j.Template != "" {
		if !mailtpl.Known(j.Template) {
			return fmt.Errorf("unknown email template %q", j.Template)
		}
		return nil
	}
	if j.Subject == "" || (j.Text == "" && j.HTML == "") {
		return errors.New("email job needs a template or subject and body")
	}
	return nil
}

// Content returns the subject and bodies, rendering the template when set.
func (j *EmailJob) Content() (subject, text, html string, err error) {
	if j.Template == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	subject, text, html, err = mailtpl.Render(j.Template, j.Data)
	if err != nil {
		return "", "", "", err
	}
	if j.Subject != "" {
		subject = j.Subject
	}
	return subject, text, html, nil
}
