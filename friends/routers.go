package friends

import "github.com/gin-gonic/gin"

// RouterGroupFriends wires the friendship and friend-invite surface.
func RouterGroupFriends(router *gin.RouterGroup) {
	router.GET("", ListFriends)
	router.POST("", SendFriendInvite)
	router.DELETE("/:id", RemoveFriend)
	router.GET("/invites", ListFriendInvites)
	router.POST("/invites/:id/accept", AcceptFriendInvite)
	router.POST("/invites/:id/decline", DeclineFriendInvite)
}
