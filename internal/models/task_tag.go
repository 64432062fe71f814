package models

// TaskTag is the join row between a task and one of its owner's tags.
type TaskTag struct {
	TaskID uint64 `gorm:"primarykey"`
	TagID  uint64 `gorm:"primarykey;index"`
}
