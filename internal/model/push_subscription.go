package model

import "time"

// PushSubscription holds a browser push subscription belonging to a member.
// Complaints assigned to that member trigger a notification to each endpoint.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	MemberID  int64     `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
