package models

// Tag is a per-user label. Names are unique within one user.
type Tag struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	Name   string `gorm:"type:varchar(50);not null;uniqueIndex:idx_tags_user_name" json:"name"`
	UserID uint64 `gorm:"not null;index;uniqueIndex:idx_tags_user_name" json:"user_id"`
}
