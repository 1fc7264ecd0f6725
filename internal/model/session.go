package model

import "time"

// Session сессия refresh токена. В базе хранится только sha256 токена
type Session struct {
	ID          string
	UserID      int
	RefreshHash string
	ExpiresAt   time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
