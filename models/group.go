package models

import "time"

type MembershipStatus string

const (
	MembershipPending MembershipStatus = "pending"
	MembershipJoined  MembershipStatus = "joined"
	MembershipLeft    MembershipStatus = "left"
)

type Group struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int       `json:"owner_id"`
	LogoKey   *string   `json:"-"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Populated by the service layer when requested, not stored on the row.
	Members []*GroupMember `json:"members,omitempty"`
}

type GroupMember struct {
	ID        int              `json:"id"`
	GroupID   int              `json:"group_id"`
	UserID    int              `json:"user_id"`
	Status    MembershipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`

	User *User `json:"user,omitempty"`
}
