package friends

import (
	"testing"

	"tripsplit/accounts"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFriendsTestDB(t *testing.T) *gorm.DB {
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

func TestFriend_BeforeCreateAssignsID(t *testing.T) {
	db := setupFriendsTestDB(t)
	friend := Friend{}
	assert.NoError(t, db.Create(&friend).Error)
	assert.NotEmpty(t, friend.ID)
}

func TestFriendInvite_DefaultsToPending(t *testing.T) {
	db := setupFriendsTestDB(t)
	invite := FriendInvite{}
	assert.NoError(t, db.Create(&invite).Error)
	assert.Equal(t, InviteStatusPending, invite.Status)
}
