package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}
func WithAppURL(url string) Option { return func(d *EmailData) { d.AppURL = url } }

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func build(appName, name, email string, opts ...Option) map[string]any {
	d := EmailData{AppName: appName, Name: name, Email: email}
	for _, o := range opts {
		o(&d)
	}
	return ToMap(d)
}

// NewWelcomeData builds the data for the signup greeting.
func NewWelcomeData(appName, firstName, lastName, email string, opts ...Option) map[string]any {
	return build(appName, fullName(firstName, lastName), email, opts...)
}

// NewPasswordChangedData builds the data for the password change notice.
func NewPasswordChangedData(appName, firstName, lastName, email string, opts ...Option) map[string]any {
	return build(appName, fullName(firstName, lastName), email, opts...)
}
