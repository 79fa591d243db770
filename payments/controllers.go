package payments

import (
	"errors"
	"net/http"

	"tripsplit/accounts"
	"tripsplit/core"
	"tripsplit/money"
	"tripsplit/trips"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func currentUser(c *gin.Context) (accounts.User, bool) {
	raw, ok := c.Get("currentUser")
	if !ok {
		return accounts.User{}, false
	}
	user, ok := raw.(accounts.User)
	return user, ok
}

// CreatePayment godoc
// @Summary Record a pending peer-to-peer payment
// @Description from is always the caller; to is resolved by toUserId or toUsername
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param payment body CreatePaymentInput true "Payment"
// @Success 200 {object} Payment
// @Failure 400 {object} map[string]string
// @Router /trips/{id}/payments [post]
func CreatePayment(c *gin.Context) {
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

	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than zero"})
		return
	}

	toID, err := resolveRecipient(tripID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if toID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot pay yourself"})
		return
	}
	if !trips.IsMember(tripID, toID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient is not a trip member"})
		return
	}

	payment := Payment{
		TripID:     tripID,
		FromUserID: user.ID,
		ToUserID:   toID,
		Amount:     money.ToCents(input.Amount),
		Method:     input.Method,
		Status:     StatusPending,
	}
	if err := core.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
		return
	}

	c.JSON(http.StatusOK, payment)
}

func resolveRecipient(tripID uuid.UUID, input CreatePaymentInput) (uuid.UUID, error) {
	if input.ToUserID != nil && *input.ToUserID != "" {
		id, err := uuid.Parse(*input.ToUserID)
		if err != nil {
			return uuid.Nil, errors.New("invalid toUserId")
		}
		return id, nil
	}
	if input.ToUsername != nil && *input.ToUsername != "" {
		var recipient accounts.User
		if err := core.DB.Where("username = ?", *input.ToUsername).First(&recipient).Error; err != nil {
			return uuid.Nil, errors.New("recipient not found")
		}
		return recipient.ID, nil
	}
	return uuid.Nil, errors.New("toUserId or toUsername is required")
}

// ConfirmPayment godoc
// @Summary Confirm a pending payment
// @Description Only the recipient may confirm; the precondition lives in the WHERE clause so a concurrent decline loses cleanly
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} Payment
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/{id}/confirm [post]
func ConfirmPayment(c *gin.Context) {
	transition(c, StatusConfirmed, nil)
}

// DeclinePayment godoc
// @Summary Decline a pending payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param body body DeclineInput false "Optional decline note"
// @Success 200 {object} Payment
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/{id}/decline [post]
func DeclinePayment(c *gin.Context) {
	var input DeclineInput
	_ = c.ShouldBindJSON(&input)
	if input.Note != nil && len(*input.Note) > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decline note must be 200 characters or fewer"})
		return
	}
	transition(c, StatusDeclined, input.Note)
}

// transition is the shared path for confirm/decline: both are
// `toUser`-only and both race on the same `status = 'pending'` guard
// (spec.md §5, §4.G). The conditional UPDATE is the whole concurrency
// story — there is no read-modify-write.
func transition(c *gin.Context, newStatus string, note *string) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	var payment Payment
	if err := core.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	if payment.ToUserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the recipient can do that"})
		return
	}

	updates := map[string]interface{}{"status": newStatus}
	if note != nil {
		updates["decline_note"] = *note
	}

	res := core.DB.Model(&Payment{}).
		Where("id = ? AND status = ?", paymentID, StatusPending).
		Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "payment is already confirmed or declined"})
		return
	}

	core.DB.First(&payment, "id = ?", paymentID)
	c.JSON(http.StatusOK, payment)
}

// DeletePayment godoc
// @Summary Cancel a pending payment
// @Description Only the sender may delete, and only while pending
// @Tags payments
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/{id} [delete]
func DeletePayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	var payment Payment
	if err := core.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	if payment.FromUserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the sender can do that"})
		return
	}

	res := core.DB.Where("id = ? AND status = ?", paymentID, StatusPending).Delete(&Payment{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete payment"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "payment is no longer pending"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListPendingPayments godoc
// @Summary List payments awaiting the caller's confirmation
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} Payment
// @Router /payments/pending [get]
func ListPendingPayments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var pending []Payment
	err := core.DB.Where("to_user_id = ? AND status = ?", user.ID, StatusPending).
		Order("created_at DESC").
		Find(&pending).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pending payments"})
		return
	}
	c.JSON(http.StatusOK, pending)
}
