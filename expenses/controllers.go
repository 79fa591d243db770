package expenses

import (
	"net/http"

	"tripsplit/accounts"
	"tripsplit/allocator"
	"tripsplit/core"
	"tripsplit/money"
	"tripsplit/trips"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func currentUser(c *gin.Context) (accounts.User, bool) {
	raw, exists := c.Get("currentUser")
	if !exists {
		return accounts.User{}, false
	}
	user, ok := raw.(accounts.User)
	return user, ok
}

// ListExpenses godoc
// @Summary List a trip's expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {array} Expense
// @Router /trips/{id}/expenses [get]
func ListExpenses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}
	if !trips.IsMember(tripID, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this trip"})
		return
	}

	var expenses []Expense
	if err := core.DB.
		Preload("Items.Assignments").
		Preload("Splits").
		Where("trip_id = ?", tripID).
		Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load expenses"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// GetExpense godoc
// @Summary Get one expense with its items and splits
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param expenseId path string true "Expense ID"
// @Success 200 {object} Expense
// @Router /expenses/{expenseId} [get]
func GetExpense(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	expenseID, err := uuid.Parse(c.Param("expenseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	var expense Expense
	if err := core.DB.Preload("Items.Assignments").Preload("Splits").First(&expense, "id = ?", expenseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return
	}
	if !trips.IsMember(expense.TripID, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this trip"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

// CreateExpense godoc
// @Summary Post a simple or itemized expense
// @Description Payload shape is selected by presence of "items": see the split engine design
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param expense body CreateExpenseInput true "Expense payload"
// @Success 200 {object} Expense
// @Failure 400 {object} map[string]string
// @Router /trips/{id}/expenses [post]
func CreateExpense(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}
	if !trips.IsMember(tripID, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this trip"})
		return
	}

	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var expense *Expense
	var buildErr *validationError
	if len(input.Items) > 0 {
		expense, buildErr = buildItemizedExpense(tripID, user.ID, input)
	} else {
		expense, buildErr = buildSimpleExpense(tripID, user.ID, input)
	}
	if buildErr != nil {
		c.JSON(buildErr.status, gin.H{"error": buildErr.message})
		return
	}
	expense.ReceiptImageURL = input.ReceiptImageURL

	if err := persistExpense(expense); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record expense"})
		return
	}
	c.JSON(http.StatusOK, expense)
}

type validationError struct {
	status  int
	message string
}

func badRequest(msg string) *validationError {
	return &validationError{status: http.StatusBadRequest, message: msg}
}

// buildSimpleExpense validates and assembles a flat-share expense:
// {title, amount, splits:[{userId, share}]}.
func buildSimpleExpense(tripID, paidByID uuid.UUID, input CreateExpenseInput) (*Expense, *validationError) {
	if input.Amount == nil || *input.Amount <= 0 {
		return nil, badRequest("amount must be greater than zero")
	}
	if len(input.Splits) == 0 {
		return nil, badRequest("splits must not be empty")
	}

	amountC := money.ToCents(*input.Amount)
	splits := make([]ExpenseSplit, 0, len(input.Splits))
	var sum money.Cents
	for _, s := range input.Splits {
		userID, err := uuid.Parse(s.UserID)
		if err != nil {
			return nil, badRequest("invalid split user id")
		}
		if s.Share <= 0 {
			return nil, badRequest("every split share must be greater than zero")
		}
		if !trips.IsMember(tripID, userID) {
			return nil, badRequest("split user is not a trip member")
		}
		shareC := money.ToCents(s.Share)
		sum += shareC
		splits = append(splits, ExpenseSplit{UserID: userID, Share: shareC})
	}
	if !money.EqualWithinCent(sum, amountC) {
		return nil, badRequest("split shares must sum to the expense amount")
	}

	return &Expense{
		TripID:   tripID,
		PaidByID: paidByID,
		Title:    input.Title,
		Amount:   amountC,
		Subtotal: amountC,
		Tax:      0,
		Tip:      0,
		Total:    amountC,
		Splits:   splits,
	}, nil
}

// buildItemizedExpense validates and assembles a receipt-style expense:
// per-item division, then tax/tip allocation over per-user subtotals.
func buildItemizedExpense(tripID, paidByID uuid.UUID, input CreateExpenseInput) (*Expense, *validationError) {
	if len(input.Items) == 0 {
		return nil, badRequest("items must not be empty")
	}

	items := make([]ExpenseItem, 0, len(input.Items))
	perUserSubtotal := make(map[uuid.UUID]money.Cents)
	order := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)

	for _, it := range input.Items {
		if it.Price <= 0 {
			return nil, badRequest("item price must be greater than zero")
		}
		if len(it.AssignedUserIDs) == 0 {
			return nil, badRequest("every item must have at least one assignee")
		}

		assignees := make([]uuid.UUID, 0, len(it.AssignedUserIDs))
		for _, raw := range it.AssignedUserIDs {
			userID, err := uuid.Parse(raw)
			if err != nil {
				return nil, badRequest("invalid assignee id")
			}
			if !trips.IsMember(tripID, userID) {
				return nil, badRequest("assignee is not a trip member")
			}
			assignees = append(assignees, userID)
			if !seen[userID] {
				seen[userID] = true
				order = append(order, userID)
			}
		}

		priceC := money.ToCents(it.Price)
		shares := splitItemPrice(priceC, len(assignees))
		assignments := make([]ExpenseItemAssignment, 0, len(assignees))
		for i, userID := range assignees {
			perUserSubtotal[userID] += shares[i]
			assignments = append(assignments, ExpenseItemAssignment{UserID: userID})
		}

		items = append(items, ExpenseItem{Name: it.Name, Price: priceC, Assignments: assignments})
	}

	var subtotalC money.Cents
	for _, v := range perUserSubtotal {
		subtotalC += v
	}

	var taxC money.Cents
	if input.Tax != nil {
		taxC = money.ToCents(*input.Tax)
	}

	var tipC money.Cents
	if input.Tip != nil {
		var tipDollars float64
		if input.Tip.Type == "amount" {
			tipDollars = input.Tip.Value
		} else {
			tipDollars = (input.Tip.Value / 100) * subtotalC.FromCents()
		}
		tipC = money.ToCents(tipDollars)
	}

	taxAlloc := allocator.Allocate(perUserSubtotal, taxC, order)
	tipAlloc := allocator.Allocate(perUserSubtotal, tipC, order)

	perUserShare := make(map[uuid.UUID]money.Cents, len(perUserSubtotal))
	for userID, subtotal := range perUserSubtotal {
		perUserShare[userID] = subtotal + taxAlloc[userID] + tipAlloc[userID]
	}

	totalC := subtotalC + taxC + tipC
	var shareSum money.Cents
	for _, v := range perUserShare {
		shareSum += v
	}
	if delta := totalC - shareSum; delta != 0 {
		perUserShare[largestSubtotalUser(perUserSubtotal, order)] += delta
	}

	splits := make([]ExpenseSplit, 0, len(perUserShare))
	for _, userID := range order {
		splits = append(splits, ExpenseSplit{UserID: userID, Share: perUserShare[userID]})
	}

	return &Expense{
		TripID:   tripID,
		PaidByID: paidByID,
		Title:    input.Title,
		Amount:   totalC,
		Subtotal: subtotalC,
		Tax:      taxC,
		Tip:      tipC,
		Total:    totalC,
		Items:    items,
		Splits:   splits,
	}, nil
}

// splitItemPrice divides priceC among n assignees: a floor base per
// assignee, with the leftover cents handed one each to the first
// assignees in input order.
func splitItemPrice(priceC money.Cents, n int) []money.Cents {
	base := priceC / money.Cents(n)
	remainder := priceC - base*money.Cents(n)
	out := make([]money.Cents, n)
	for i := range out {
		out[i] = base
		if money.Cents(i) < remainder {
			out[i]++
		}
	}
	return out
}

// largestSubtotalUser breaks ties by input order, matching the
// allocator's own tie-break rule.
func largestSubtotalUser(perUserSubtotal map[uuid.UUID]money.Cents, order []uuid.UUID) uuid.UUID {
	best := order[0]
	bestVal := perUserSubtotal[best]
	for _, userID := range order[1:] {
		if perUserSubtotal[userID] > bestVal {
			best = userID
			bestVal = perUserSubtotal[userID]
		}
	}
	return best
}

// persistExpense writes the expense and all of its children in one
// transaction; a failure at any row rolls back the whole set.
func persistExpense(expense *Expense) error {
	return core.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(expense).Error
	})
}
