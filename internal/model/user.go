package model

import "time"

// Admin is the single operator identity carried by an admin session token.
type Admin struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
