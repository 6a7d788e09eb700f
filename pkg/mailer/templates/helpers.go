package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

// New builds EmailData for a recipient and applies opts in order.
func New(appName, recipientName, recipientEmail string, opts ...Option) EmailData {
	d := EmailData{AppName: appName, RecipientName: recipientName, RecipientEmail: recipientEmail}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func WithActor(name string) Option    { return func(d *EmailData) { d.ActorName = name } }
func WithStatus(s string) Option      { return func(d *EmailData) { d.Status = s } }
func WithMessageText(t string) Option { return func(d *EmailData) { d.MessageText = t } }

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 UTC")
	}
}

// WithRequest sets the request id, its note and a link to it under appURL.
func WithRequest(appURL, id, message string) Option {
	return func(d *EmailData) {
		d.AppURL = appURL
		d.RequestID = id
		d.RequestMessage = message
		if base := strings.TrimRight(appURL, "/"); base != "" {
			d.RequestURL = base + "/requests/" + id
		}
	}
}
