package models

import (
	"time"
)

// CacheEntry represents a cached upstream payload persisted in the database.
// Value is the raw JSON body returned by the catalog API; it is never
// inspected, only stored and served verbatim.
type CacheEntry struct {
	Key       string    `gorm:"primaryKey;size:512"`
	Value     []byte    `gorm:"type:blob"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
