package accounts

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"tripsplit/core"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth/gothic"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser godoc
// @Summary Register a new user
// @Description Create a new tripsplit account with email, username and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param user body RegisterInput true "New account"
// @Success 200 {object} Public
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func CreateUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing User
	err := core.DB.Where("email = ? OR username = ?", input.Email, input.Username).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email or username already in use"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check existing user"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := User{
		Email:        strings.ToLower(input.Email),
		Username:     input.Username,
		PasswordHash: string(hash),
	}

	if err := core.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusOK, user.ToPublic())
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password, returns a bearer token
// @Tags authentication
// @Accept json
// @Produce json
// @Param credentials body LoginInput true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user User
	if err := core.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
		return
	}

	if user.PasswordHash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "this account signs in with Google"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := issueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user.ToPublic()})
}

// GetUserProfile godoc
// @Summary Current user
// @Description Returns the authenticated caller's profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Public
// @Router /users/me [get]
func GetUserProfile(c *gin.Context) {
	raw, ok := c.Get("currentUser")
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	user := raw.(User)
	c.JSON(http.StatusOK, user.ToPublic())
}

// SearchUsers godoc
// @Summary Search users
// @Description Search users whose username or email contains the query, for inviting to a trip or adding a friend
// @Tags user
// @Produce json
// @Param q query string true "search text"
// @Success 200 {array} Public
// @Router /users/search [get]
func SearchUsers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []Public{})
		return
	}

	var users []User
	like := "%" + q + "%"
	if err := core.DB.Where("username LIKE ? OR email LIKE ?", like, like).Limit(20).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	out := make([]Public, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToPublic())
	}
	c.JSON(http.StatusOK, out)
}

// GoogleOAuthBegin godoc
// @Summary Begin Google OAuth flow
// @Tags authentication
// @Success 302 {string} string "Redirect to Google"
// @Router /auth/google/begin [get]
func GoogleOAuthBegin(c *gin.Context) {
	key := os.Getenv("SESSION_SECRET")
	if key == "" {
		key = "tripsplit-session-key"
	}
	isProd := os.Getenv("APP_ENV") == "production"

	store := sessions.NewCookieStore([]byte(key))
	store.MaxAge(86400 * 30)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = isProd

	gothic.Store = store
	q := c.Request.URL.Query()
	q.Add("provider", "google")
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// GoogleOAuthCallback godoc
// @Summary Google OAuth callback
// @Description Finds or creates the account, then redirects with a bearer token
// @Tags authentication
// @Success 307 {string} string "Redirect to frontend with token"
// @Router /auth/google/callback [get]
func GoogleOAuthCallback(c *gin.Context) {
	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authenticate with Google"})
		return
	}

	var dbUser User
	result := core.DB.Where("google_id = ?", gothUser.UserID).First(&dbUser)

	expiresAt := gothUser.ExpiresAt.Unix()
	provider := "google"

	if result.Error != nil {
		dbUser = User{
			Email:        strings.ToLower(gothUser.Email),
			Username:     gothUser.Email,
			GoogleID:     &gothUser.UserID,
			Name:         &gothUser.Name,
			FirstName:    &gothUser.FirstName,
			LastName:     &gothUser.LastName,
			AvatarURL:    &gothUser.AvatarURL,
			Provider:     &provider,
			AccessToken:  &gothUser.AccessToken,
			RefreshToken: &gothUser.RefreshToken,
			ExpiresAt:    &expiresAt,
		}
		if createErr := core.DB.Create(&dbUser).Error; createErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
	} else {
		updates := map[string]interface{}{
			"name":          gothUser.Name,
			"first_name":    gothUser.FirstName,
			"last_name":     gothUser.LastName,
			"avatar_url":    gothUser.AvatarURL,
			"access_token":  gothUser.AccessToken,
			"refresh_token": gothUser.RefreshToken,
			"expires_at":    expiresAt,
		}
		if updateErr := core.DB.Model(&dbUser).Updates(updates).Error; updateErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
	}

	token, err := issueToken(dbUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	redirectURL := fmt.Sprintf("%s/auth/callback?token=%s", frontendURL, token)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
