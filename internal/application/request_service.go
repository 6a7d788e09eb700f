package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	repo "github.com/oksasatya/skillswap-api/internal/domain/repository"
	"github.com/oksasatya/skillswap-api/pkg/apperror"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
	"github.com/oksasatya/skillswap-api/pkg/metrics"
)

// Messages of the request lifecycle failures.
const (
	MsgRecipientRequired = "recipient is required"
	MsgInvalidRecipient  = "invalid recipient id"
	MsgRecipientNotFound = "recipient not found"
	MsgSelfRequest       = "cannot send a swap request to yourself"
	MsgInvalidStatus     = "invalid status"
	MsgNotRecipient      = "only the recipient can update the status"
	MsgNotParticipant    = "you do not have access to this request"
)

// RequestService manages the swap request lifecycle.
type RequestService struct {
	Requests  repo.SwapRequestRepository
	Users     repo.UserRepository
	Directory *Directory
	Notifier  *Notifier
	Logger    *logrus.Logger
	Metrics   *metrics.Metrics
}

func NewRequestService(requests repo.SwapRequestRepository, users repo.UserRepository, dir *Directory, n *Notifier, logger *logrus.Logger, m *metrics.Metrics) *RequestService {
	return &RequestService{Requests: requests, Users: users, Directory: dir, Notifier: n, Logger: logger, Metrics: m}
}

// Create opens a pending request from caller to toUserID.
func (s *RequestService) Create(ctx context.Context, caller *PublicUser, toUserID, message string) (*RequestDetails, error) {
	if toUserID == "" {
		return nil, apperror.Validation(MsgRecipientRequired)
	}

	recipient, err := s.Users.GetByID(ctx, toUserID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrInvalidID):
			return nil, apperror.Validation(MsgInvalidRecipient)
		case errors.Is(err, repo.ErrNotFound):
			return nil, apperror.NotFound(MsgRecipientNotFound)
		}
		return nil, internal(s.Logger, err, "get recipient failed", logrus.Fields{"to_user_id": toUserID})
	}
	if recipient.ID == caller.ID {
		return nil, apperror.Validation(MsgSelfRequest)
	}

	now := helpers.Now()
	req := &entity.SwapRequest{
		FromUserID: caller.ID,
		ToUserID:   recipient.ID,
		Message:    message,
		Status:     entity.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Requests.Create(ctx, req); err != nil {
		return nil, internal(s.Logger, err, "create swap request failed", logrus.Fields{"from_user_id": caller.ID})
	}
	s.Metrics.RequestCreated()

	from := *caller
	to := NewPublicUser(recipient)
	s.Notifier.RequestReceived(ctx, req, &from, &to)

	d := newRequestDetails(req, &from, &to)
	return &d, nil
}

// SetStatus lets the recipient set any of the four statuses, in any order.
func (s *RequestService) SetStatus(ctx context.Context, caller *PublicUser, requestID, status string) (*RequestDetails, error) {
	next := entity.RequestStatus(status)
	if !next.Valid() {
		return nil, apperror.Validation(MsgInvalidStatus)
	}

	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.IsRecipient(caller.ID) {
		return nil, apperror.Authorization(MsgNotRecipient)
	}

	updated, err := s.Requests.UpdateStatus(ctx, req.ID, next, helpers.Now())
	if err != nil {
		if isMissing(err) {
			return nil, apperror.NotFound(msgRequestNotFound)
		}
		return nil, internal(s.Logger, err, "update request status failed", logrus.Fields{"request_id": req.ID})
	}
	s.Metrics.StatusChanged(status)

	d, err := s.enrichOne(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.Notifier.StatusChanged(ctx, updated, d.FromUser, d.ToUser)
	return d, nil
}

// ListForUser returns the requests sent or received by callerID, newest
// first, with participants resolved in one batch.
func (s *RequestService) ListForUser(ctx context.Context, callerID string) ([]RequestDetails, error) {
	reqs, err := s.Requests.ListByParticipant(ctx, callerID)
	if err != nil {
		return nil, internal(s.Logger, err, "list swap requests failed", logrus.Fields{"user_id": callerID})
	}

	ids := make([]string, 0, 2*len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.FromUserID, r.ToUserID)
	}
	users, err := s.Directory.Resolve(ctx, ids)
	if err != nil {
		return nil, internal(s.Logger, err, "resolve participants failed", nil)
	}

	out := make([]RequestDetails, 0, len(reqs))
	for i := range reqs {
		r := &reqs[i]
		out = append(out, newRequestDetails(r, lookup(users, r.FromUserID), lookup(users, r.ToUserID)))
	}
	return out, nil
}

// Get returns the request or NotFound, malformed ids included.
func (s *RequestService) Get(ctx context.Context, requestID string) (*entity.SwapRequest, error) {
	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		if isMissing(err) {
			return nil, apperror.NotFound(msgRequestNotFound)
		}
		return nil, internal(s.Logger, err, "get swap request failed", logrus.Fields{"request_id": requestID})
	}
	return req, nil
}

// AuthorizeParticipant returns the request if callerID is its sender or recipient.
func (s *RequestService) AuthorizeParticipant(ctx context.Context, callerID, requestID string) (*entity.SwapRequest, error) {
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.IsParticipant(callerID) {
		return nil, apperror.Authorization(MsgNotParticipant)
	}
	return req, nil
}

func (s *RequestService) enrichOne(ctx context.Context, r *entity.SwapRequest) (*RequestDetails, error) {
	users, err := s.Directory.Resolve(ctx, []string{r.FromUserID, r.ToUserID})
	if err != nil {
		return nil, internal(s.Logger, err, "resolve participants failed", logrus.Fields{"request_id": r.ID})
	}
	d := newRequestDetails(r, lookup(users, r.FromUserID), lookup(users, r.ToUserID))
	return &d, nil
}
