// Package activity implements the merged, time-ordered feed of expense
// and payment events across every trip a caller belongs to (spec.md
// §4.J, component J). Unlike trips, which avoids importing expenses
// and payments to keep the dependency graph acyclic, activity sits
// above all three and is free to query their GORM models directly.
package activity

import (
	"net/http"
	"sort"

	"tripsplit/accounts"
	"tripsplit/core"
	"tripsplit/expenses"
	"tripsplit/payments"
	"tripsplit/trips"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxEvents bounds the feed to the most recent events, per spec.md §4.J.
const maxEvents = 30

// Event is one entry in the merged activity feed: either an expense
// post or a payment of any status. The client uses Type to decide
// rendering and the From/To/PaidBy identities to personalize copy
// ("You paid @x" vs "@x paid you").
type Event struct {
	Type      string      `json:"type"` // "expense" or "payment"
	ID        uuid.UUID   `json:"id"`
	TripID    uuid.UUID   `json:"tripId"`
	CreatedAt int64       `json:"createdAt"`
	Title     *string     `json:"title,omitempty"`
	Amount    float64     `json:"amount"`
	PaidByID  *uuid.UUID  `json:"paidById,omitempty"`
	FromID    *uuid.UUID  `json:"fromId,omitempty"`
	ToID      *uuid.UUID  `json:"toId,omitempty"`
	Method    *string     `json:"method,omitempty"`
	Status    *string     `json:"status,omitempty"`
}

func currentUser(c *gin.Context) (accounts.User, bool) {
	raw, ok := c.Get("currentUser")
	if !ok {
		return accounts.User{}, false
	}
	user, ok := raw.(accounts.User)
	return user, ok
}

// GetActivity godoc
// @Summary Merged activity feed
// @Description Most recent ≤30 expense and payment events across every trip the caller belongs to
// @Tags activity
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Event
// @Router /activity [get]
func GetActivity(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tripIDs, err := callerTripIDs(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trips"})
		return
	}
	if len(tripIDs) == 0 {
		c.JSON(http.StatusOK, []Event{})
		return
	}

	events, err := Feed(tripIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activity"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func callerTripIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var memberships []trips.TripMember
	if err := core.DB.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.TripID)
	}
	return ids, nil
}

// Feed merges expense and payment rows from the given trips into a
// single list sorted by creation time descending, capped at
// maxEvents. It is a plain function over IDs so it can be unit tested
// without the gin/http layer.
func Feed(tripIDs []uuid.UUID) ([]Event, error) {
	var expenseRows []expenses.Expense
	if err := core.DB.Where("trip_id IN (?)", tripIDs).Find(&expenseRows).Error; err != nil {
		return nil, err
	}

	var paymentRows []payments.Payment
	if err := core.DB.Where("trip_id IN (?)", tripIDs).Find(&paymentRows).Error; err != nil {
		return nil, err
	}

	out := make([]Event, 0, len(expenseRows)+len(paymentRows))
	for _, e := range expenseRows {
		title := e.Title
		paidBy := e.PaidByID
		out = append(out, Event{
			Type:      "expense",
			ID:        e.ID,
			TripID:    e.TripID,
			CreatedAt: e.CreatedAt.Unix(),
			Title:     &title,
			Amount:    e.Total.Float64(),
			PaidByID:  &paidBy,
		})
	}
	for _, p := range paymentRows {
		from := p.FromUserID
		to := p.ToUserID
		status := p.Status
		out = append(out, Event{
			Type:      "payment",
			ID:        p.ID,
			TripID:    p.TripID,
			CreatedAt: p.CreatedAt.Unix(),
			Amount:    p.Amount.Float64(),
			FromID:    &from,
			ToID:      &to,
			Method:    p.Method,
			Status:    &status,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	if len(out) > maxEvents {
		out = out[:maxEvents]
	}
	return out, nil
}
