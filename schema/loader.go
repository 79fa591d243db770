package schema

import (
	"tripsplit/accounts"
	"tripsplit/expenses"
	"tripsplit/friends"
	"tripsplit/payments"
	"tripsplit/trips"
)

// GetAllModels returns every GORM model for Atlas schema generation.
func GetAllModels() []interface{} {
	var models []interface{}
	models = append(models, accounts.GetModels()...)
	models = append(models, trips.GetModels()...)
	models = append(models, expenses.GetModels()...)
	models = append(models, payments.GetModels()...)
	models = append(models, friends.GetModels()...)
	return models
}

// GetAccountsModels returns only the accounts package's models.
func GetAccountsModels() []interface{} {
	return accounts.GetModels()
}

// GetTripsModels returns only the trips package's models.
func GetTripsModels() []interface{} {
	return trips.GetModels()
}
