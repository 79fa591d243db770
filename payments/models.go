package payments

import (
	"tripsplit/core"
	"tripsplit/money"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDeclined  = "declined"
)

// Payment is a peer-to-peer settlement attempt inside a trip. It is
// created pending and moves to exactly one terminal state; once
// terminal it is immutable (spec.md §4.G).
type Payment struct {
	core.BaseModel
	TripID      uuid.UUID   `json:"tripId" gorm:"type:uuid;not null;index"`
	FromUserID  uuid.UUID   `json:"fromUserId" gorm:"type:uuid;not null"`
	ToUserID    uuid.UUID   `json:"toUserId" gorm:"type:uuid;not null"`
	Amount      money.Cents `json:"amount" gorm:"not null"`
	Method      *string     `json:"method,omitempty"`
	Status      string      `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	DeclineNote *string     `json:"declineNote,omitempty"`
}

// GetModels returns every model this package owns, for AutoMigrate.
func GetModels() []interface{} {
	return []interface{}{&Payment{}}
}
