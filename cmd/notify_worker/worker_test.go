package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/skillswap-api/pkg/mailer"
	mailtpl "github.com/oksasatya/skillswap-api/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, text, html})
	return nil
}

func encode(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestWorker_SendsTemplatedJob(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	s := &fakeSender{}
	w := &worker{sender: s, logger: logger}

	job := mailer.EmailJob{
		To:       "bob@example.com",
		Template: mailtpl.SwapRequestReceived,
		Data:     mailtpl.ToMap(mailtpl.New("Skill Swap", "Bob", "bob@example.com", mailtpl.WithActor("Alice"))),
	}
	require.Equal(t, outcomeAck, w.handle(context.Background(), encode(t, job)))
	require.Len(t, s.sent, 1)
	require.Equal(t, "bob@example.com", s.sent[0].to)
	require.Equal(t, "Alice wants to swap skills with you", s.sent[0].subject)
	require.Contains(t, s.sent[0].html, "Alice")
}

func TestWorker_LiteralJob(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	s := &fakeSender{}
	w := &worker{sender: s, logger: logger}

	require.Equal(t, outcomeAck, w.handle(context.Background(), encode(t, mailer.EmailJob{To: "a@b.c", Subject: "s", Text: "t"})))
	require.Equal(t, sent{"a@b.c", "s", "t", ""}, s.sent[0])
}

func TestWorker_DropsMalformed(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	s := &fakeSender{}
	w := &worker{sender: s, logger: logger}
	ctx := context.Background()

	require.Equal(t, outcomeDrop, w.handle(ctx, []byte("{not json")))
	require.Equal(t, outcomeDrop, w.handle(ctx, encode(t, mailer.EmailJob{Template: mailtpl.RequestMessage})))
	require.Equal(t, outcomeDrop, w.handle(ctx, encode(t, mailer.EmailJob{To: "a@b.c", Template: "login_otp"})))
	require.Equal(t, outcomeDrop, w.handle(ctx, encode(t, mailer.EmailJob{To: "a@b.c"})))
	require.Empty(t, s.sent)
}

func TestWorker_RetriesSendFailure(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	w := &worker{sender: &fakeSender{err: errors.New("mailgun 503")}, logger: logger}

	require.Equal(t, outcomeRetry, w.handle(context.Background(), encode(t, mailer.EmailJob{To: "a@b.c", Text: "t"})))
	require.Equal(t, "send failed", hook.LastEntry().Message)
}
