package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FriendshipStatus represents the lifecycle state of a friendship record.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates a friend request awaiting a decision.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates an established friendship.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// Friendship represents the relationship between two users. The requester and
// addressee record direction (who initiated); rejection and removal delete the
// row rather than storing a terminal status.
type Friendship struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	RequesterID uint `gorm:"not null;index" json:"requester_id"`
	AddresseeID uint `gorm:"not null;index" json:"addressee_id"`
	// PairKey is the direction-agnostic identity of the pair. The unique
	// index on it is the serialization point for concurrent requests:
	// inserting a duplicate pair fails at the database regardless of
	// direction.
	PairKey   string           `gorm:"uniqueIndex;not null" json:"-"`
	Status    FriendshipStatus `gorm:"type:varchar(20);default:'pending';index:idx_friendships_status" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// BeforeSave derives the normalized pair key from the participant IDs.
// Requester/addressee order is preserved; only the key is order-independent.
func (f *Friendship) BeforeSave(_ *gorm.DB) error {
	if f.RequesterID == 0 || f.AddresseeID == 0 {
		return fmt.Errorf("friendship requires both participants")
	}
	f.PairKey = FriendshipPairKey(f.RequesterID, f.AddresseeID)
	return nil
}

// FriendshipPairKey returns the normalized key for an unordered user pair.
func FriendshipPairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Involves reports whether the given user is a participant of the friendship.
func (f *Friendship) Involves(userID uint) bool {
	return f.RequesterID == userID || f.AddresseeID == userID
}

// CounterpartyID returns the other participant relative to userID.
func (f *Friendship) CounterpartyID(userID uint) uint {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}

// FriendshipView is the API projection of a friendship enriched with the
// counterparty's username.
type FriendshipView struct {
	ID             uint             `json:"id"`
	FriendID       uint             `json:"friend_id"`
	FriendUsername string           `json:"friend_username"`
	Status         FriendshipStatus `json:"status"`
	// Online is populated from the websocket hub for accepted-friend listings.
	Online    bool      `json:"online"`
	CreatedAt time.Time `json:"created_at"`
}
