// Package models holds the data structures shared by repositories and
// services: portal registrants, their RADIUS credentials, and the derived
// usage statistics.
package models

import "time"

// Identity is a registered portal user's profile record. Created once at
// provisioning, immutable afterwards.
type Identity struct {
	ID        int64
	FullName  string
	Company   string
	Email     string
	Phone     string
	CreatedAt time.Time
}
