// @title TripSplit API
// @description Expense-sharing and settlement service for group trips
// @version 1.0
// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"os"

	"tripsplit/accounts"
	"tripsplit/activity"
	"tripsplit/core"
	"tripsplit/expenses"
	"tripsplit/friends"
	"tripsplit/middlewares"
	"tripsplit/payments"
	"tripsplit/storage"
	"tripsplit/trips"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	core.LoadEnvs()
	core.ConnectDB()

	if err := storage.InitializeStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
}

func main() {
	router := gin.Default()

	// CORS middleware - must be applied before routes
	router.Use(middlewares.CORSMiddleware())

	// Swagger endpoint. Run `swag init` to (re)generate docs/docs.go and
	// import it blank here once the spec needs to be served; omitted
	// until then so the binary doesn't ship a stale spec.
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "message": "TripSplit API is running"})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	accounts.RouterGroupUserAuth(v1.Group("/auth"))
	if os.Getenv("GOOGLE_OAUTH_CLIENT_ID") != "" {
		accounts.RouterGroupGoogleOAuth(v1.Group("/auth"))
	}

	v1.Use(accounts.CheckAuth)

	accounts.RouterGroupUserProfile(v1.Group("/users"))

	trips.RouterGroupTrips(v1.Group("/trips"))
	trips.RouterGroupInvites(v1.Group("/invites"))

	expenses.RouterGroupTripExpenses(v1.Group("/trips/:id/expenses"))
	expenses.RouterGroupExpenses(v1.Group("/expenses"))
	expenses.RouterGroupTripReceipts(v1.Group("/trips/:id"))

	payments.RouterGroupTripPayments(v1.Group("/trips/:id/payments"))
	payments.RouterGroupPayments(v1.Group("/payments"))

	friends.RouterGroupFriends(v1.Group("/friends"))

	activity.RouterGroupActivity(v1.Group("/activity"))

	if err := router.Run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
