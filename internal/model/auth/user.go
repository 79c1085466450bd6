package auth

import (
	"time"
)

// User is a registered farmer account. IDs are UUID strings.
type User struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Email       string     `bson:"email" json:"email"`
	Password    string     `bson:"password" json:"-"`
	FullName    string     `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Status      UserStatus `bson:"status" json:"status"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// UserStatus gates login, never chatting.
type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)

// IsValid reports whether the status is a known value.
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusBanned
}

// String returns the status string.
func (s UserStatus) String() string {
	return string(s)
}
