package models

import "time"

// Block is a directed edge: BlockerID has blocked BlockedID
type Block struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlockerID string    `json:"blocker_id" gorm:"size:64;index;uniqueIndex:idx_blocker_blocked"`
	BlockedID string    `json:"blocked_id" gorm:"size:64;uniqueIndex:idx_blocker_blocked"`
	CreatedAt time.Time `json:"created_at"`
}
