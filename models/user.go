package models

import (
	"time"
)

const (
	RoleClient = "client"
	RoleWorker = "worker"
)

type User struct {
	UserID   string   `bson:"userid" json:"userid"`
	Username string   `bson:"username" json:"username"`
	Email    string   `bson:"email,omitempty" json:"email,omitempty"`
	Password string   `bson:"password" json:"-"`
	Phone    string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Address  string   `bson:"address,omitempty" json:"address,omitempty"`
	Role     []string `bson:"role" json:"role"`

	RefreshToken  string    `bson:"refresh_token,omitempty" json:"-"`
	RefreshExpiry time.Time `bson:"refresh_expiry,omitempty" json:"-"`
	LastLogin     time.Time `bson:"last_login,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
