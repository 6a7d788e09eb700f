package entity

import "time"

// Message is an immutable note attached to a SwapRequest by one of its participants.
type Message struct {
	ID        string
	RequestID string
	SenderID  string
	Text      string
	CreatedAt time.Time
}
