package expenses

// CreateExpenseInput is the payload for POST /trips/:id/expenses. It is
// a tagged union: presence of Items selects the itemized path, its
// absence selects the simple-split path.
type CreateExpenseInput struct {
	Title           string       `json:"title" binding:"required"`
	Amount          *float64     `json:"amount,omitempty"`
	Splits          []SplitInput `json:"splits,omitempty"`
	Items           []ItemInput  `json:"items,omitempty"`
	Tax             *float64     `json:"tax,omitempty"`
	Tip             *TipInput    `json:"tip,omitempty"`
	ReceiptImageURL *string      `json:"receiptImageUrl,omitempty"`
}

// SplitInput is one user's share in a simple split.
type SplitInput struct {
	UserID string  `json:"userId" binding:"required"`
	Share  float64 `json:"share"`
}

// ItemInput is one receipt line in an itemized expense.
type ItemInput struct {
	Name            string   `json:"name" binding:"required"`
	Price           float64  `json:"price"`
	AssignedUserIDs []string `json:"assignedUserIds"`
}

// TipInput expresses a tip either as a flat amount or a percentage of
// the itemized subtotal.
type TipInput struct {
	Type  string  `json:"type" binding:"required"` // "percent" or "amount"
	Value float64 `json:"value"`
}
