package activity

import (
	"testing"
	"time"

	"tripsplit/accounts"
	"tripsplit/core"
	"tripsplit/expenses"
	"tripsplit/money"
	"tripsplit/payments"
	"tripsplit/trips"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupActivityTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	var models []interface{}
	models = append(models, accounts.GetModels()...)
	models = append(models, trips.GetModels()...)
	models = append(models, expenses.GetModels()...)
	models = append(models, payments.GetModels()...)
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestFeed_MergesAndSortsDescending(t *testing.T) {
	db := setupActivityTestDB(t)
	core.DB = db

	trip := trips.Trip{Name: "Ski Week", Status: trips.StatusPlanning}
	assert.NoError(t, db.Create(&trip).Error)

	alice := accounts.User{Email: "alice@example.com", Username: "alice"}
	bob := accounts.User{Email: "bob@example.com", Username: "bob"}
	assert.NoError(t, db.Create(&alice).Error)
	assert.NoError(t, db.Create(&bob).Error)

	expense := expenses.Expense{TripID: trip.ID, PaidByID: alice.ID, Title: "Pizza", Total: 3600, Subtotal: 3000, Tax: 0, Tip: 600, Amount: 3600}
	assert.NoError(t, db.Create(&expense).Error)
	// Force an earlier timestamp so ordering is deterministic.
	db.Model(&expense).Update("created_at", time.Now().Add(-time.Hour))

	payment := payments.Payment{TripID: trip.ID, FromUserID: bob.ID, ToUserID: alice.ID, Amount: money.ToCents(12), Status: payments.StatusPending}
	assert.NoError(t, db.Create(&payment).Error)

	events, err := Feed([]uuid.UUID{trip.ID})
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "payment", events[0].Type)
	assert.Equal(t, "expense", events[1].Type)
}

func TestFeed_CapsAtThirtyEvents(t *testing.T) {
	db := setupActivityTestDB(t)
	core.DB = db

	trip := trips.Trip{Name: "Reunion", Status: trips.StatusPlanning}
	assert.NoError(t, db.Create(&trip).Error)

	alice := accounts.User{Email: "alice@example.com", Username: "alice"}
	assert.NoError(t, db.Create(&alice).Error)

	for i := 0; i < 35; i++ {
		e := expenses.Expense{TripID: trip.ID, PaidByID: alice.ID, Title: "Coffee", Total: 500, Subtotal: 500, Amount: 500}
		assert.NoError(t, db.Create(&e).Error)
	}

	events, err := Feed([]uuid.UUID{trip.ID})
	assert.NoError(t, err)
	assert.Len(t, events, maxEvents)
}
