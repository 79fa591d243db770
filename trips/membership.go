package trips

import (
	"tripsplit/core"

	"github.com/google/uuid"
)

// IsMember reports whether userID currently belongs to tripID.
func IsMember(tripID, userID uuid.UUID) bool {
	var count int64
	core.DB.Model(&TripMember{}).Where("trip_id = ? AND user_id = ?", tripID, userID).Count(&count)
	return count > 0
}

// MemberIDs returns every member's user ID for a trip.
func MemberIDs(tripID uuid.UUID) ([]uuid.UUID, error) {
	var members []TripMember
	if err := core.DB.Where("trip_id = ?", tripID).Find(&members).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids, nil
}
