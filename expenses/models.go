package expenses

import (
	"tripsplit/core"
	"tripsplit/money"

	"github.com/google/uuid"
)

// Expense is one posted spend event, simple or itemized. For a simple
// split tax/tip are always zero and subtotal and total both mirror
// amount; for an itemized one total = subtotal + tax + tip.
type Expense struct {
	core.BaseModel
	TripID   uuid.UUID   `json:"tripId" gorm:"type:uuid;not null;index"`
	PaidByID uuid.UUID   `json:"paidById" gorm:"type:uuid;not null"`
	Title    string      `json:"title" gorm:"not null"`
	Amount   money.Cents `json:"amount" gorm:"not null"`
	Subtotal money.Cents `json:"subtotal" gorm:"not null"`
	Tax      money.Cents `json:"tax" gorm:"not null"`
	Tip      money.Cents `json:"tip" gorm:"not null"`
	Total    money.Cents `json:"total" gorm:"not null"`

	// ReceiptImageURL optionally cites the photographed receipt this
	// itemized expense was built from, uploaded separately via the
	// storage package (spec.md's OCR pipeline §4.C stays a pure
	// function over text and never touches this field).
	ReceiptImageURL *string `json:"receiptImageUrl,omitempty"`

	Items  []ExpenseItem  `json:"items,omitempty" gorm:"foreignKey:ExpenseID"`
	Splits []ExpenseSplit `json:"splits,omitempty" gorm:"foreignKey:ExpenseID"`
}

// ExpenseItem is one line of an itemized receipt. It only exists for
// itemized expenses.
type ExpenseItem struct {
	core.BaseModel
	ExpenseID uuid.UUID   `json:"expenseId" gorm:"type:uuid;not null;index"`
	Name      string      `json:"name" gorm:"not null"`
	Price     money.Cents `json:"price" gorm:"not null"`

	Assignments []ExpenseItemAssignment `json:"assignments,omitempty" gorm:"foreignKey:ItemID"`
}

// ExpenseItemAssignment records one user sharing one item.
type ExpenseItemAssignment struct {
	core.BaseModel
	ItemID uuid.UUID `json:"itemId" gorm:"type:uuid;not null;uniqueIndex:idx_item_user"`
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_item_user"`
}

// ExpenseSplit is a user's final share of an expense, in cents. Every
// expense carries at least one split row and the set sums to Total.
type ExpenseSplit struct {
	core.BaseModel
	ExpenseID uuid.UUID   `json:"expenseId" gorm:"type:uuid;not null;uniqueIndex:idx_expense_user"`
	UserID    uuid.UUID   `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_expense_user"`
	Share     money.Cents `json:"share" gorm:"not null"`
}

// GetModels returns every model this package owns, for AutoMigrate.
func GetModels() []interface{} {
	return []interface{}{
		&Expense{},
		&ExpenseItem{},
		&ExpenseItemAssignment{},
		&ExpenseSplit{},
	}
}
