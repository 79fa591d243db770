package trips

import "github.com/gin-gonic/gin"

// RouterGroupTrips wires the trip CRUD and membership surface.
func RouterGroupTrips(router *gin.RouterGroup) {
	router.GET("", ListTrips)
	router.POST("", CreateTrip)
	router.GET("/:id", GetTrip)
	router.PATCH("/:id", UpdateTrip)
	router.POST("/:id/members", AddMember)
	router.GET("/:id/balances", GetTripBalances)
}

// RouterGroupInvites wires the trip invite inbox.
func RouterGroupInvites(router *gin.RouterGroup) {
	router.GET("", ListInvites)
	router.POST("/:id/accept", AcceptInvite)
	router.POST("/:id/decline", DeclineInvite)
}
