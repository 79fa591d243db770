package trips

import (
	"errors"
	"net/http"

	"tripsplit/accounts"
	"tripsplit/balances"
	"tripsplit/core"
	"tripsplit/money"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func currentUser(c *gin.Context) (accounts.User, bool) {
	raw, ok := c.Get("currentUser")
	if !ok {
		return accounts.User{}, false
	}
	u, ok := raw.(accounts.User)
	return u, ok
}

func parseDate(s *string) (*core.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	var d core.Date
	if err := d.UnmarshalJSON([]byte(`"` + *s + `"`)); err != nil {
		return nil, err
	}
	return &d, nil
}

type expenseSummaryRow struct {
	ID       uuid.UUID
	PaidByID uuid.UUID
	Total    money.Cents
}

type splitRow struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
	Share     money.Cents
}

type paymentRow struct {
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Amount     money.Cents
	Status     string
}

// loadBalanceInputs gathers the raw expense/split/payment rows for a
// trip without this package importing the expenses or payments
// packages (which both import trips for membership checks — importing
// them back here would be a cycle). Plain SQL against their tables
// keeps the dependency graph one-directional, the same way the
// teacher's own summary queries reach across tables with db.Raw.
func loadBalanceInputs(tripID uuid.UUID) ([]balances.ExpenseLine, []balances.PaymentLine, int, money.Cents, error) {
	var expenseRows []expenseSummaryRow
	if err := core.DB.Raw(
		"SELECT id, paid_by_id, total FROM expenses WHERE trip_id = ?", tripID,
	).Scan(&expenseRows).Error; err != nil {
		return nil, nil, 0, 0, err
	}

	var splitRows []splitRow
	if len(expenseRows) > 0 {
		ids := make([]uuid.UUID, 0, len(expenseRows))
		for _, e := range expenseRows {
			ids = append(ids, e.ID)
		}
		if err := core.DB.Raw(
			"SELECT expense_id, user_id, share FROM expense_splits WHERE expense_id IN (?)", ids,
		).Scan(&splitRows).Error; err != nil {
			return nil, nil, 0, 0, err
		}
	}

	splitsByExpense := make(map[uuid.UUID]map[uuid.UUID]money.Cents, len(expenseRows))
	for _, s := range splitRows {
		if splitsByExpense[s.ExpenseID] == nil {
			splitsByExpense[s.ExpenseID] = make(map[uuid.UUID]money.Cents)
		}
		splitsByExpense[s.ExpenseID][s.UserID] = s.Share
	}

	var total money.Cents
	lines := make([]balances.ExpenseLine, 0, len(expenseRows))
	for _, e := range expenseRows {
		lines = append(lines, balances.ExpenseLine{
			PaidByID: e.PaidByID,
			Total:    e.Total,
			Splits:   splitsByExpense[e.ID],
		})
		total += e.Total
	}

	var paymentRows []paymentRow
	if err := core.DB.Raw(
		"SELECT from_user_id, to_user_id, amount, status FROM payments WHERE trip_id = ?", tripID,
	).Scan(&paymentRows).Error; err != nil {
		return nil, nil, 0, 0, err
	}
	paymentLines := make([]balances.PaymentLine, 0, len(paymentRows))
	for _, p := range paymentRows {
		paymentLines = append(paymentLines, balances.PaymentLine{
			FromID:    p.FromUserID,
			ToID:      p.ToUserID,
			Amount:    p.Amount,
			Confirmed: p.Status == "confirmed",
		})
	}

	return lines, paymentLines, len(expenseRows), total, nil
}

// ListTrips godoc
// @Summary List trips
// @Description Lists every trip the caller belongs to, with per-trip aggregates
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {array} map[string]interface{}
// @Router /trips [get]
func ListTrips(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var memberships []TripMember
	if err := core.DB.Where("user_id = ?", user.ID).Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trips"})
		return
	}

	out := make([]gin.H, 0, len(memberships))
	for _, m := range memberships {
		var trip Trip
		if err := core.DB.First(&trip, "id = ?", m.TripID).Error; err != nil {
			continue
		}

		memberIDs, err := MemberIDs(trip.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trip members"})
			return
		}
		expenseLines, paymentLines, expenseCount, totalAmount, err := loadBalanceInputs(trip.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trip balances"})
			return
		}
		bal := balances.Calculate(memberIDs, expenseLines, paymentLines)

		out = append(out, gin.H{
			"trip":          trip,
			"totalAmount":   totalAmount,
			"expenseCount":  expenseCount,
			"userBalance":   bal[user.ID],
		})
	}

	c.JSON(http.StatusOK, out)
}

// CreateTrip godoc
// @Summary Create a trip
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trip body CreateTripInput true "New trip"
// @Success 200 {object} Trip
// @Router /trips [post]
func CreateTrip(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input CreateTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := StatusPlanning
	if input.Status != nil {
		if !ValidStatuses[*input.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = *input.Status
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
		return
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
		return
	}

	trip := Trip{Name: input.Name, StartDate: startDate, EndDate: endDate, Status: status, Tags: pq.StringArray(input.Tags)}

	txErr := core.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}
		member := TripMember{TripID: trip.ID, UserID: user.ID, Role: RoleOwner}
		return tx.Create(&member).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create trip"})
		return
	}

	c.JSON(http.StatusOK, trip)
}

// GetTrip godoc
// @Summary Trip detail
// @Description Full trip detail including members and computed balances
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /trips/:id [get]
func GetTrip(c *gin.Context) {
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

	var trip Trip
	if err := core.DB.First(&trip, "id = ?", tripID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		return
	}

	if !IsMember(tripID, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this trip"})
		return
	}

	var members []TripMember
	core.DB.Where("trip_id = ?", tripID).Find(&members)

	memberIDs, err := MemberIDs(tripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load members"})
		return
	}
	expenseLines, paymentLines, expenseCount, totalAmount, err := loadBalanceInputs(tripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load balances"})
		return
	}
	bal := balances.Calculate(memberIDs, expenseLines, paymentLines)

	c.JSON(http.StatusOK, gin.H{
		"trip":         trip,
		"members":      members,
		"totalAmount":  totalAmount,
		"expenseCount": expenseCount,
		"balances":     bal,
		"userBalance":  bal[user.ID],
	})
}

// UpdateTrip godoc
// @Summary Update a trip
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param trip body UpdateTripInput true "Fields to update"
// @Success 200 {object} Trip
// @Router /trips/:id [patch]
func UpdateTrip(c *gin.Context) {
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

	var trip Trip
	if err := core.DB.First(&trip, "id = ?", tripID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		return
	}
	if !IsMember(tripID, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this trip"})
		return
	}

	var input UpdateTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		if len(*input.Name) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name must be at least 2 characters"})
			return
		}
		trip.Name = *input.Name
	}
	if input.Status != nil {
		if !ValidStatuses[*input.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		trip.Status = *input.Status
	}
	if input.StartDate != nil {
		d, err := parseDate(input.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		trip.StartDate = d
	}
	if input.EndDate != nil {
		d, err := parseDate(input.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		trip.EndDate = d
	}
	if input.Tags != nil {
		trip.Tags = pq.StringArray(input.Tags)
	}

	if err := core.DB.Save(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update trip"})
		return
	}

	c.JSON(http.StatusOK, trip)
}

// AddMember godoc
// @Summary Invite a member
// @Description Creates a pending TripInvite for the named user
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param member body AddMemberInput true "Invitee"
// @Success 200 {object} TripInvite
// @Failure 409 {object} map[string]string
// @Router /trips/:id/members [post]
func AddMember(c *gin.Context) {
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
	if !IsMember(tripID, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this trip"})
		return
	}

	var input AddMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invitee accounts.User
	if err := core.DB.Where("username = ?", input.Username).First(&invitee).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if IsMember(tripID, invitee.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "user is already a member"})
		return
	}

	var existing TripInvite
	err = core.DB.Where("trip_id = ? AND invitee_id = ? AND status = ?", tripID, invitee.ID, InviteStatusPending).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "an invite is already pending for this user"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check existing invites"})
		return
	}

	invite := TripInvite{
		TripID:    tripID,
		InviterID: user.ID,
		InviteeID: invitee.ID,
		Status:    InviteStatusPending,
	}
	if err := core.DB.Create(&invite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create invite"})
		return
	}

	c.JSON(http.StatusOK, invite)
}

// GetTripBalances godoc
// @Summary Trip balances and settlement suggestions
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Success 200 {object} map[string]interface{}
// @Router /trips/:id/balances [get]
func GetTripBalances(c *gin.Context) {
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
	if !IsMember(tripID, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this trip"})
		return
	}

	memberIDs, err := MemberIDs(tripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load members"})
		return
	}
	expenseLines, paymentLines, _, _, err := loadBalanceInputs(tripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load balances"})
		return
	}

	bal := balances.Calculate(memberIDs, expenseLines, paymentLines)
	settlements := balances.Plan(bal, memberIDs)

	paymentCount := 0
	var totalSettled money.Cents
	for _, p := range paymentLines {
		if p.Confirmed {
			paymentCount++
			totalSettled += p.Amount
		}
	}

	balanceList := make([]gin.H, 0, len(memberIDs))
	for _, id := range memberIDs {
		balanceList = append(balanceList, gin.H{"userId": id, "balance": bal[id]})
	}

	c.JSON(http.StatusOK, gin.H{
		"userBalance":  bal[user.ID],
		"balances":     balanceList,
		"settlements":  settlements,
		"totalSettled": totalSettled,
		"paymentCount": paymentCount,
	})
}
