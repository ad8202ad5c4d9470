package models

import "time"

// CloseFriend is an owner-controlled edge granting FriendID access to close-friends content
type CloseFriend struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   string    `json:"owner_id" gorm:"size:64;index;uniqueIndex:idx_owner_friend"`
	FriendID  string    `json:"friend_id" gorm:"size:64;uniqueIndex:idx_owner_friend"`
	CreatedAt time.Time `json:"created_at"`
}
