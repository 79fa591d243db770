package accounts

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/google"
)

// RouterGroupUserAuth wires the unauthenticated register/login surface.
func RouterGroupUserAuth(router *gin.RouterGroup) {
	router.POST("/register", CreateUser)
	router.POST("/login", Login)
}

// RouterGroupUserProfile wires the authenticated user-facing endpoints.
func RouterGroupUserProfile(router *gin.RouterGroup) {
	router.GET("/me", GetUserProfile)
	router.GET("/search", SearchUsers)
}

// RouterGroupGoogleOAuth wires the optional Google OAuth front door.
// It is only registered by app.go when GOOGLE_OAUTH_CLIENT_ID is set.
func RouterGroupGoogleOAuth(router *gin.RouterGroup) {
	clientID := os.Getenv("GOOGLE_OAUTH_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET")
	callbackURL := os.Getenv("GOOGLE_OAUTH_CALLBACK_URL")
	if callbackURL == "" {
		callbackURL = "http://localhost:8080/auth/google/callback"
	}

	provider := google.New(clientID, clientSecret, callbackURL, "email", "profile")
	goth.UseProviders(provider)

	router.GET("/google/begin", GoogleOAuthBegin)
	router.GET("/google/callback", GoogleOAuthCallback)
}
