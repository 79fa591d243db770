package payments

// CreatePaymentInput is the payload for POST /trips/:id/payments. The
// recipient is resolved by whichever of ToUserID/ToUsername is set.
type CreatePaymentInput struct {
	ToUserID   *string  `json:"toUserId,omitempty"`
	ToUsername *string  `json:"toUsername,omitempty"`
	Amount     float64  `json:"amount"`
	Method     *string  `json:"method,omitempty"`
}

// DeclineInput is the optional payload for POST /payments/:id/decline.
type DeclineInput struct {
	Note *string `json:"note,omitempty"`
}
