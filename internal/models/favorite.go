package models

import "time"

// Favorite links a user to a game from the upstream catalog. The pair
// (UserID, GameID) is unique; re-adding the same game is rejected.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_game" json:"user_id"`
	GameID    int64     `gorm:"not null;uniqueIndex:idx_user_game" json:"game_id"`
	GameName  string    `gorm:"not null" json:"game_name"`
	GameImage *string   `json:"game_image"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}
