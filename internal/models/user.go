package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is a registered account. FavoriteGameIDs denormalises the user's
// Favorite rows so the profile payload can list game ids without a join;
// FavoriteService keeps the two in step.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`

	ProfilePicture *string `json:"profile_picture"`

	FavoriteGameIDs datatypes.JSONSlice[int64] `json:"favorite_game_ids"`
	Favorites       []Favorite                 `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
