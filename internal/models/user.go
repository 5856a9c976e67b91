package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account. Only the fields the notification
// engine reads are modeled here; account management lives elsewhere.
type User struct {
	ID       string    `json:"id" gorm:"primaryKey;size:40"`
	Name     string    `json:"name" gorm:"uniqueIndex"`
	Email    string    `json:"email"`
	Language string    `json:"language" gorm:"size:12"`
	Joined   time.Time `json:"joined" gorm:"autoCreateTime"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
