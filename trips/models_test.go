package trips

import (
	"testing"

	"tripsplit/accounts"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTripsTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	models := append(GetModels(), accounts.GetModels()...)
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestTrip_BeforeCreateAssignsID(t *testing.T) {
	db := setupTripsTestDB(t)
	trip := Trip{Name: "Lake House", Status: StatusPlanning}
	assert.NoError(t, db.Create(&trip).Error)
	assert.NotEmpty(t, trip.ID)
}

func TestTripMember_UniquePerTripAndUser(t *testing.T) {
	db := setupTripsTestDB(t)
	trip := Trip{Name: "Lake House", Status: StatusPlanning}
	assert.NoError(t, db.Create(&trip).Error)
	user := accounts.User{Email: "a@example.com", Username: "a"}
	assert.NoError(t, db.Create(&user).Error)

	assert.NoError(t, db.Create(&TripMember{TripID: trip.ID, UserID: user.ID, Role: RoleOwner}).Error)
	err := db.Create(&TripMember{TripID: trip.ID, UserID: user.ID, Role: RoleMember}).Error
	assert.Error(t, err)
}

func TestTripInvite_UniquePerTripAndInvitee(t *testing.T) {
	db := setupTripsTestDB(t)
	trip := Trip{Name: "Lake House", Status: StatusPlanning}
	assert.NoError(t, db.Create(&trip).Error)
	owner := accounts.User{Email: "owner@example.com", Username: "owner"}
	invitee := accounts.User{Email: "invitee@example.com", Username: "invitee"}
	assert.NoError(t, db.Create(&owner).Error)
	assert.NoError(t, db.Create(&invitee).Error)

	first := TripInvite{TripID: trip.ID, InviterID: owner.ID, InviteeID: invitee.ID, Status: InviteStatusPending}
	assert.NoError(t, db.Create(&first).Error)

	second := TripInvite{TripID: trip.ID, InviterID: owner.ID, InviteeID: invitee.ID, Status: InviteStatusPending}
	assert.Error(t, db.Create(&second).Error)
}

func TestTrip_TagsRoundTrip(t *testing.T) {
	db := setupTripsTestDB(t)
	trip := Trip{Name: "Lake House", Status: StatusPlanning, Tags: pq.StringArray{"ski", "annual"}}
	assert.NoError(t, db.Create(&trip).Error)

	var loaded Trip
	assert.NoError(t, db.First(&loaded, "id = ?", trip.ID).Error)
	assert.Equal(t, pq.StringArray{"ski", "annual"}, loaded.Tags)
}

func TestValidStatuses_AcceptsCancelled(t *testing.T) {
	assert.True(t, ValidStatuses[StatusCancelled])
	assert.True(t, ValidStatuses[StatusPlanning])
	assert.True(t, ValidStatuses[StatusActive])
	assert.True(t, ValidStatuses[StatusCompleted])
	assert.False(t, ValidStatuses["bogus"])
}
