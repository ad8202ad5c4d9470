package models

// AccountType is the profile category
type AccountType string

const (
	AccountPersonal AccountType = "personal"
	AccountCreator  AccountType = "creator"
	AccountBusiness AccountType = "business"
)

// UserProfile is the denormalized profile row kept in PostgreSQL.
// Counters track the graph and content stores but are treated as authoritative for scoring.
type UserProfile struct {
	ID             string      `json:"id" gorm:"primaryKey;size:64"`
	Username       string      `json:"username" gorm:"uniqueIndex;size:30"`
	DisplayName    string      `json:"display_name" gorm:"size:64"`
	Bio            string      `json:"bio" gorm:"size:150"`
	AccountType    AccountType `json:"account_type" gorm:"size:20;default:'personal'"`
	IsVerified     bool        `json:"is_verified" gorm:"default:false"`
	IsPrivate      bool        `json:"is_private" gorm:"default:false"`
	FollowersCount int64       `json:"followers_count" gorm:"default:0"`
	FollowingCount int64       `json:"following_count" gorm:"default:0"`
	PostsCount     int64       `json:"posts_count" gorm:"default:0"`
	CreatedAt      int64       `json:"created_at" gorm:"autoCreateTime:milli"` // milliseconds since epoch
	UpdatedAt      int64       `json:"updated_at" gorm:"autoUpdateTime:milli"`
}

// TableName keeps the table name stable across model renames
func (UserProfile) TableName() string { return "users" }
