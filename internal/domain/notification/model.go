package notification

import "time"

type Notification struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;index;not null"`
	Type      string `gorm:"not null"`
	Title     string `gorm:"not null"`
	Message   string `gorm:"not null"`
	RelatedID *string
	IsRead    bool      `gorm:"not null;default:false"`
	SentAt    time.Time `gorm:"autoCreateTime"`
}
