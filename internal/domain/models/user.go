// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the directory: regular users that meetings
// are scheduled for, and admins that do the scheduling.
//
// Admins are privileged accounts; they can never be the owner of a meeting
// and have no meeting list of their own.
type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	// UserID is the opaque public identifier, assigned at signup.
	UserID string `bson:"user_id" json:"userId"`

	FirstName  string `bson:"first_name" json:"firstName"`
	LastName   string `bson:"last_name" json:"lastName"`
	UserName   string `bson:"user_name" json:"userName"`
	UserNameCI string `bson:"user_name_ci" json:"-"` // lowercase, diacritics-stripped

	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`

	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	CountryCode string `bson:"country_code,omitempty" json:"countryCode,omitempty"`

	IsAdmin bool `bson:"is_admin" json:"isAdmin"`

	// Password reset state; token is single-use and expires.
	ResetToken       string    `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpiry time.Time `bson:"reset_token_expiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// FullName is the display name used in emails and meeting records.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
