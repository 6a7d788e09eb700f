package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	repo "github.com/oksasatya/skillswap-api/internal/domain/repository"
	"github.com/oksasatya/skillswap-api/pkg/apperror"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
	"github.com/oksasatya/skillswap-api/pkg/metrics"
)

const MsgEmptyText = "message text is required"

// MessageService is the conversation store attached to swap requests.
type MessageService struct {
	Messages  repo.MessageRepository
	Requests  *RequestService
	Directory *Directory
	Notifier  *Notifier
	Logger    *logrus.Logger
	Metrics   *metrics.Metrics
}

func NewMessageService(messages repo.MessageRepository, requests *RequestService, dir *Directory, n *Notifier, logger *logrus.Logger, m *metrics.Metrics) *MessageService {
	return &MessageService{Messages: messages, Requests: requests, Directory: dir, Notifier: n, Logger: logger, Metrics: m}
}

// Append stores a message from caller on a request it participates in.
func (s *MessageService) Append(ctx context.Context, caller *PublicUser, requestID, text string) (*MessageDetails, error) {
	if text == "" {
		return nil, apperror.Validation(MsgEmptyText)
	}

	req, err := s.Requests.AuthorizeParticipant(ctx, caller.ID, requestID)
	if err != nil {
		return nil, err
	}

	msg := &entity.Message{
		RequestID: req.ID,
		SenderID:  caller.ID,
		Text:      text,
		CreatedAt: helpers.Now(),
	}
	if err := s.Messages.Create(ctx, msg); err != nil {
		return nil, internal(s.Logger, err, "create message failed", logrus.Fields{"request_id": req.ID})
	}
	s.Metrics.MessageAppended()

	sender := *caller
	s.notifyOther(ctx, req, msg, &sender)

	d := newMessageDetails(msg, &sender)
	return &d, nil
}

// List returns the messages of a request, oldest first, with senders resolved in one batch.
func (s *MessageService) List(ctx context.Context, callerID, requestID string) ([]MessageDetails, error) {
	req, err := s.Requests.AuthorizeParticipant(ctx, callerID, requestID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.Messages.ListByRequest(ctx, req.ID)
	if err != nil {
		return nil, internal(s.Logger, err, "list messages failed", logrus.Fields{"request_id": req.ID})
	}

	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.SenderID)
	}
	senders, err := s.Directory.Resolve(ctx, ids)
	if err != nil {
		return nil, internal(s.Logger, err, "resolve senders failed", logrus.Fields{"request_id": req.ID})
	}

	out := make([]MessageDetails, 0, len(msgs))
	for i := range msgs {
		m := &msgs[i]
		out = append(out, newMessageDetails(m, lookup(senders, m.SenderID)))
	}
	return out, nil
}

func (s *MessageService) notifyOther(ctx context.Context, req *entity.SwapRequest, msg *entity.Message, sender *PublicUser) {
	if !s.Notifier.Enabled() {
		return
	}
	otherID := req.FromUserID
	if otherID == sender.ID {
		otherID = req.ToUserID
	}
	users, err := s.Directory.Resolve(ctx, []string{otherID})
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("request_id", req.ID).Warn("resolve message recipient failed")
		}
		return
	}
	s.Notifier.MessagePosted(ctx, req, msg, sender, lookup(users, otherID))
}
