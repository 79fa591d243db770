package trips

import (
	"net/http"

	"tripsplit/core"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListInvites godoc
// @Summary List pending trip invites
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TripInvite
// @Router /invites [get]
func ListInvites(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var invites []TripInvite
	if err := core.DB.Where("invitee_id = ? AND status = ?", user.ID, InviteStatusPending).Find(&invites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load invites"})
		return
	}
	c.JSON(http.StatusOK, invites)
}

func loadPendingInviteForInvitee(inviteID, userID uuid.UUID) (*TripInvite, error) {
	var invite TripInvite
	err := core.DB.Where("id = ? AND invitee_id = ?", inviteID, userID).First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

// AcceptInvite godoc
// @Summary Accept a trip invite
// @Description Transitions the invite to accepted and inserts the membership row in one transaction
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invite ID"
// @Success 200 {object} TripMember
// @Failure 409 {object} map[string]string
// @Router /invites/:id/accept [post]
func AcceptInvite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	inviteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invite id"})
		return
	}

	invite, err := loadPendingInviteForInvitee(inviteID, user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invite not found"})
		return
	}
	if invite.Status != InviteStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "invite is no longer pending"})
		return
	}

	var member TripMember
	txErr := core.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&TripInvite{}).
			Where("id = ? AND status = ?", invite.ID, InviteStatusPending).
			Update("status", InviteStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		member = TripMember{TripID: invite.TripID, UserID: invite.InviteeID, Role: RoleMember}
		return tx.Create(&member).Error
	})
	if txErr != nil {
		if txErr == gorm.ErrRecordNotFound {
			c.JSON(http.StatusConflict, gin.H{"error": "invite is no longer pending"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept invite"})
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeclineInvite godoc
// @Summary Decline a trip invite
// @Tags invites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invite ID"
// @Success 200 {object} TripInvite
// @Router /invites/:id/decline [post]
func DeclineInvite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	inviteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invite id"})
		return
	}

	res := core.DB.Model(&TripInvite{}).
		Where("id = ? AND invitee_id = ? AND status = ?", inviteID, user.ID, InviteStatusPending).
		Update("status", InviteStatusDeclined)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decline invite"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "invite is no longer pending"})
		return
	}

	var invite TripInvite
	core.DB.First(&invite, "id = ?", inviteID)
	c.JSON(http.StatusOK, invite)
}
