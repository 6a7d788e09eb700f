package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/pkg/mailer"
	mailtpl "github.com/oksasatya/skillswap-api/pkg/mailer/templates"
)

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRetry
	outcomeDrop
)

// emailSender is satisfied by *mailer.Mailgun.
type emailSender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type worker struct {
	sender emailSender
	logger *logrus.Logger
}

// render produces subject, text and html for a job, either from its
// template or from its literal fields.
func render(job mailer.EmailJob) (string, string, string, error) {
	if err := job.Validate(); err != nil {
		return "", "", "", err
	}
	if job.Template != "" {
		if !mailtpl.Known(job.Template) {
			return "", "", "", errors.New("unknown template " + job.Template)
		}
		return mailtpl.Render(job.Template, job.Data)
	}
	return job.Subject, job.Text, job.HTML, nil
}

// handle processes one delivery. Malformed jobs are dropped; send failures are retried.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.WithError(err).Warn("bad message")
		return outcomeDrop
	}

	subject, text, html, err := render(job)
	if err != nil {
		w.logger.WithError(err).WithField("template", job.Template).Warn("render failed")
		return outcomeDrop
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := w.sender.Send(c, job.To, subject, text, html); err != nil {
		w.logger.WithError(err).WithField("template", job.Template).Error("send failed")
		return outcomeRetry
	}
	w.logger.WithField("template", job.Template).Info("notification sent")
	return outcomeAck
}
