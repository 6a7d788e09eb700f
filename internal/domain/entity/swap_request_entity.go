package entity

import "time"

// RequestStatus is the single state field of a SwapRequest.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAccepted  RequestStatus = "accepted"
	StatusRejected  RequestStatus = "rejected"
	StatusCompleted RequestStatus = "completed"
)

// Valid reports whether s is one of the four known statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// SwapRequest is an offer from FromUserID to ToUserID.
// Only the recipient may change Status; any status may follow any other.
type SwapRequest struct {
	ID         string
	FromUserID string
	ToUserID   string
	Message    string
	Status     RequestStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsParticipant reports whether userID is the sender or the recipient.
func (r *SwapRequest) IsParticipant(userID string) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// IsRecipient reports whether userID may change the status.
func (r *SwapRequest) IsRecipient(userID string) bool {
	return r.ToUserID == userID
}
