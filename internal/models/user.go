package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole identifies what a user can do in the app.
type UserRole string

const (
	RoleApplicant UserRole = "applicant"
	RoleManager   UserRole = "manager"
	RoleAdmin     UserRole = "admin"
)

// UserStatus is the account lifecycle field. Any valid status may overwrite
// any other; accounts have no transition table.
type UserStatus string

const (
	UserPending   UserStatus = "pending"
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

// Valid reports whether s is one of the known account statuses.
func (s UserStatus) Valid() bool {
	switch s {
	case UserPending, UserActive, UserSuspended:
		return true
	}
	return false
}

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"` // de-facto unique key
	Role            UserRole           `bson:"role" json:"role"`
	Status          UserStatus         `bson:"status" json:"status"`
	SuspendReason   string             `bson:"suspendReason,omitempty" json:"suspendReason,omitempty"`
	SuspendFeedback string             `bson:"suspendFeedback,omitempty" json:"suspendFeedback,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
