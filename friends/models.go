// Package friends implements symmetric friendship and the directed
// friend-invite state machine (spec.md §3 Friend/FriendInvite, §4
// component K). A friendship is stored as two mirrored rows rather
// than one canonical ordered pair, the same tradeoff spec.md §9 calls
// out for index-friendly per-user lookups.
package friends

import (
	"tripsplit/core"

	"github.com/google/uuid"
)

// Friend is one half of a symmetric friendship row. For every
// (userId, friendId) row there exists a mirrored (friendId, userId)
// row, written together in AcceptFriendInvite's transaction.
type Friend struct {
	core.BaseModel
	UserID   uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_friend_pair"`
	FriendID uuid.UUID `json:"friendId" gorm:"type:uuid;not null;uniqueIndex:idx_friend_pair"`
}

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)

// FriendInvite is a directed pending friend request. At most one
// non-terminal invite exists between any two users, in either
// direction, at a time.
type FriendInvite struct {
	core.BaseModel
	SenderID   uuid.UUID `json:"senderId" gorm:"type:uuid;not null;uniqueIndex:idx_friend_invite_pair"`
	ReceiverID uuid.UUID `json:"receiverId" gorm:"type:uuid;not null;uniqueIndex:idx_friend_invite_pair"`
	Status     string    `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
}

// GetModels returns every model this package owns, for AutoMigrate.
func GetModels() []interface{} {
	return []interface{}{&Friend{}, &FriendInvite{}}
}
