package friends

import (
	"errors"
	"net/http"

	"tripsplit/accounts"
	"tripsplit/core"

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

// areFriends reports whether a and b already have a symmetric
// friendship row.
func areFriends(a, b uuid.UUID) bool {
	var count int64
	core.DB.Model(&Friend{}).Where("user_id = ? AND friend_id = ?", a, b).Count(&count)
	return count > 0
}

// hasNonTerminalInvite reports whether a non-terminal invite exists
// between a and b in either direction.
func hasNonTerminalInvite(a, b uuid.UUID) bool {
	var count int64
	core.DB.Model(&FriendInvite{}).
		Where("status = ?", InviteStatusPending).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Count(&count)
	return count > 0
}

// ListFriends godoc
// @Summary List the caller's friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {array} accounts.Public
// @Router /friends [get]
func ListFriends(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var rows []Friend
	if err := core.DB.Where("user_id = ?", user.ID).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load friends"})
		return
	}

	out := make([]accounts.Public, 0, len(rows))
	for _, row := range rows {
		var friend accounts.User
		if err := core.DB.First(&friend, "id = ?", row.FriendID).Error; err != nil {
			continue
		}
		out = append(out, friend.ToPublic())
	}
	c.JSON(http.StatusOK, out)
}

// SendFriendInvite godoc
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendFriendInviteInput true "Invitee username"
// @Success 200 {object} FriendInvite
// @Failure 409 {object} map[string]string
// @Router /friends [post]
func SendFriendInvite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input SendFriendInviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var receiver accounts.User
	if err := core.DB.Where("username = ?", input.Username).First(&receiver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if receiver.ID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot friend yourself"})
		return
	}
	if areFriends(user.ID, receiver.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "already friends"})
		return
	}
	if hasNonTerminalInvite(user.ID, receiver.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "a friend request is already pending between these users"})
		return
	}

	invite := FriendInvite{SenderID: user.ID, ReceiverID: receiver.ID, Status: InviteStatusPending}
	if err := core.DB.Create(&invite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create friend request"})
		return
	}

	c.JSON(http.StatusOK, invite)
}

// ListFriendInvites godoc
// @Summary List pending friend requests addressed to the caller
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {array} FriendInvite
// @Router /friends/invites [get]
func ListFriendInvites(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var invites []FriendInvite
	if err := core.DB.Where("receiver_id = ? AND status = ?", user.ID, InviteStatusPending).Find(&invites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load friend requests"})
		return
	}
	c.JSON(http.StatusOK, invites)
}

// AcceptFriendInvite godoc
// @Summary Accept a friend request
// @Description Transitions the invite to accepted and writes both mirrored friendship rows in one transaction
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invite ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /friends/invites/{id}/accept [post]
func AcceptFriendInvite(c *gin.Context) {
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

	var invite FriendInvite
	if err := core.DB.Where("id = ? AND receiver_id = ?", inviteID, user.ID).First(&invite).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "friend request not found"})
		return
	}

	txErr := core.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&FriendInvite{}).
			Where("id = ? AND status = ?", invite.ID, InviteStatusPending).
			Update("status", InviteStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Create(&Friend{UserID: invite.SenderID, FriendID: invite.ReceiverID}).Error; err != nil {
			return err
		}
		return tx.Create(&Friend{UserID: invite.ReceiverID, FriendID: invite.SenderID}).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusConflict, gin.H{"error": "friend request is no longer pending"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "friends"})
}

// DeclineFriendInvite godoc
// @Summary Decline a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invite ID"
// @Success 200 {object} FriendInvite
// @Router /friends/invites/{id}/decline [post]
func DeclineFriendInvite(c *gin.Context) {
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

	res := core.DB.Model(&FriendInvite{}).
		Where("id = ? AND receiver_id = ? AND status = ?", inviteID, user.ID, InviteStatusPending).
		Update("status", InviteStatusDeclined)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decline friend request"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "friend request is no longer pending"})
		return
	}

	var invite FriendInvite
	core.DB.First(&invite, "id = ?", inviteID)
	c.JSON(http.StatusOK, invite)
}

// RemoveFriend godoc
// @Summary Remove a friend
// @Description Deletes both mirrored rows
// @Tags friends
// @Security BearerAuth
// @Param id path string true "Friend user ID"
// @Success 200 {object} map[string]string
// @Router /friends/{id} [delete]
func RemoveFriend(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	friendID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid friend id"})
		return
	}

	txErr := core.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND friend_id = ?", user.ID, friendID).Delete(&Friend{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND friend_id = ?", friendID, user.ID).Delete(&Friend{}).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove friend"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
