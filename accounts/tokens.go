package accounts

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// issueToken signs a 24-hour bearer token for userID. The whole service
// settles on jwt/v4 HS256; nothing issues or accepts a v3 token.
func issueToken(userID uuid.UUID) (string, error) {
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID.String(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	})
	return claims.SignedString([]byte(os.Getenv("SECRET")))
}
