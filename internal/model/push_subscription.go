package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// A subscription covers the whole dashboard feed, so the endpoint alone
// identifies it; there is no per-location opt-in.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
