package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// PasswordHash holds a bcrypt digest; EmailLower is the uniqueness key.
// Neither field ever leaves the application layer.
type User struct {
	ID           string
	Email        string
	EmailLower   string
	Name         string
	PasswordHash string
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the free-text self description of a user.
type Profile struct {
	Bio            string
	SkillsOffering string
	SkillsSeeking  string
	Availability   string
}
