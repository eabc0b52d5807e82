package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Loan struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	InterestRate float64            `bson:"interestRate,omitempty" json:"interestRate,omitempty"`
	MaxLimit     float64            `bson:"maxLimit,omitempty" json:"maxLimit,omitempty"`
	// ManagerEmail is a denormalized copy of the creating manager's email,
	// not a foreign key into the users collection.
	ManagerEmail string    `bson:"managerEmail" json:"managerEmail"`
	ShowHome     bool      `bson:"showHome" json:"showHome"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
