package models

import "time"

type Invite struct {
	ID        int       `json:"id"`
	GroupID   int       `json:"group_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
