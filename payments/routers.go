package payments

import "github.com/gin-gonic/gin"

// RouterGroupTripPayments wires payment creation, nested under a trip.
func RouterGroupTripPayments(router *gin.RouterGroup) {
	router.POST("", CreatePayment)
}

// RouterGroupPayments wires the standalone payment lifecycle endpoints.
func RouterGroupPayments(router *gin.RouterGroup) {
	router.GET("/pending", ListPendingPayments)
	router.POST("/:id/confirm", ConfirmPayment)
	router.POST("/:id/decline", DeclinePayment)
	router.DELETE("/:id", DeletePayment)
}
