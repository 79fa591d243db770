package accounts

import "tripsplit/core"

// User is a registered tripsplit account. Password auth and Google
// OAuth both resolve to the same row; PasswordHash is empty for
// accounts created purely through OAuth.
type User struct {
	core.BaseModel
	Email        string  `json:"email" gorm:"uniqueIndex;not null"`
	Username     string  `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string  `json:"-"`
	GoogleID     *string `json:"-" gorm:"uniqueIndex"`
	Name         *string `json:"name,omitempty"`
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	AvatarURL    *string `json:"avatarUrl,omitempty"`
	Provider     *string `json:"-"`
	AccessToken  *string `json:"-"`
	RefreshToken *string `json:"-"`
	ExpiresAt    *int64  `json:"-"`
}

// Public is the wire-safe projection returned from every endpoint that
// surfaces a user: never the password hash or OAuth tokens.
type Public struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

func (u User) ToPublic() Public {
	return Public{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

// GetModels returns every model this package owns, for AutoMigrate and
// Atlas schema generation.
func GetModels() []interface{} {
	return []interface{}{&User{}}
}
