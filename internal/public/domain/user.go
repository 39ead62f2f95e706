package domain

import "time"

// User is a registered account. HashedPassword is a bcrypt digest;
// the clear text never leaves the login handler.
type User struct {
	ID             string
	Email          string
	FullName       string
	HashedPassword string
	KakaoID        string
	CreatedAt      time.Time
}
