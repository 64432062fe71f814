package models

import (
	"time"
)

type Task struct {
	ID                 uint64     `gorm:"primarykey" json:"id"`
	UserID             uint64     `gorm:"not null;index" json:"user_id"`
	Title              string     `gorm:"type:varchar(150);not null" json:"title"`
	Description        *string    `gorm:"type:text" json:"description"`
	DueDate            *time.Time `gorm:"index" json:"due_date"`
	Status             string     `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	Priority           string     `gorm:"type:varchar(50);not null;default:'normal'" json:"priority"`
	EisenhowerQuadrant string     `gorm:"type:varchar(50);not null;default:'neither-urgent-nor-important'" json:"eisenhower_quadrant"`
	Completed          bool       `gorm:"not null;default:false" json:"completed"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Relations
	Tags []Tag `gorm:"many2many:task_tags;constraint:OnDelete:CASCADE" json:"tags"`
}
