package application

import (
	"github.com/oksasatya/skillswap-api/internal/domain/entity"
	"github.com/oksasatya/skillswap-api/pkg/helpers"
)

// PublicUser is the sanitized form of a user: no password digest, no lookup key.
type PublicUser struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Profile   PublicProfile `json:"profile"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

type PublicProfile struct {
	Bio            string `json:"bio"`
	SkillsOffering string `json:"skillsOffering"`
	SkillsSeeking  string `json:"skillsSeeking"`
	Availability   string `json:"availability"`
}

// ProfileInput carries a full profile replacement. Missing fields are empty.
type ProfileInput struct {
	Bio            string `json:"bio"`
	SkillsOffering string `json:"skillsOffering"`
	SkillsSeeking  string `json:"skillsSeeking"`
	Availability   string `json:"availability"`
}

// RequestDetails is a swap request enriched with participant snapshots.
// FromUser/ToUser are nil when the participant can no longer be resolved.
type RequestDetails struct {
	ID         string      `json:"id"`
	FromUserID string      `json:"fromUserId"`
	ToUserID   string      `json:"toUserId"`
	Message    string      `json:"message"`
	Status     string      `json:"status"`
	CreatedAt  string      `json:"createdAt"`
	UpdatedAt  string      `json:"updatedAt"`
	FromUser   *PublicUser `json:"fromUser"`
	ToUser     *PublicUser `json:"toUser"`
}

// MessageDetails is a request message enriched with its sender's snapshot.
type MessageDetails struct {
	ID        string      `json:"id"`
	RequestID string      `json:"requestId"`
	SenderID  string      `json:"senderId"`
	Text      string      `json:"text"`
	CreatedAt string      `json:"createdAt"`
	Sender    *PublicUser `json:"sender"`
}

func NewPublicUser(u *entity.User) PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Profile: PublicProfile{
			Bio:            u.Profile.Bio,
			SkillsOffering: u.Profile.SkillsOffering,
			SkillsSeeking:  u.Profile.SkillsSeeking,
			Availability:   u.Profile.Availability,
		},
		CreatedAt: helpers.FormatTimestamp(u.CreatedAt),
		UpdatedAt: helpers.FormatTimestamp(u.UpdatedAt),
	}
}

func newRequestDetails(r *entity.SwapRequest, from, to *PublicUser) RequestDetails {
	return RequestDetails{
		ID:         r.ID,
		FromUserID: r.FromUserID,
		ToUserID:   r.ToUserID,
		Message:    r.Message,
		Status:     string(r.Status),
		CreatedAt:  helpers.FormatTimestamp(r.CreatedAt),
		UpdatedAt:  helpers.FormatTimestamp(r.UpdatedAt),
		FromUser:   from,
		ToUser:     to,
	}
}

func newMessageDetails(m *entity.Message, sender *PublicUser) MessageDetails {
	return MessageDetails{
		ID:        m.ID,
		RequestID: m.RequestID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		CreatedAt: helpers.FormatTimestamp(m.CreatedAt),
		Sender:    sender,
	}
}
