package models

import "time"

// Follow represents a directed follow relationship from a follower (UserID)
// to a followed author (AuthorID). A pair is either present or absent; there
// is no update. Uniqueness of the pair is enforced by the composite index so
// that concurrent follow requests cannot produce duplicate rows.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_follows_user_author" json:"author_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
