package database

import (
	"tripsplit/accounts"
	"tripsplit/core"
	"tripsplit/expenses"
	"tripsplit/friends"
	"tripsplit/payments"
	"tripsplit/trips"
)

// AutoMigrateAll runs GORM AutoMigrate for every model this service owns.
func AutoMigrateAll() error {
	return core.DB.AutoMigrate(GetAllModels()...)
}

// GetAllModels returns every model across every package, for AutoMigrate.
// cmd/atlas-loader reads the same model set through schema.GetAllModels.
func GetAllModels() []interface{} {
	var models []interface{}
	models = append(models, accounts.GetModels()...)
	models = append(models, trips.GetModels()...)
	models = append(models, expenses.GetModels()...)
	models = append(models, payments.GetModels()...)
	models = append(models, friends.GetModels()...)
	return models
}

// activity (§4.J) deliberately owns no models: it reads expenses and
// payments rows directly and never persists anything.
