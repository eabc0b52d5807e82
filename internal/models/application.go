package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeeStatus tracks the processing fee of a loan application:
// unpaid until checkout completes, pending while a manager reviews it,
// then approved or rejected.
type FeeStatus string

const (
	FeeUnpaid   FeeStatus = "unpaid"
	FeePending  FeeStatus = "pending"
	FeeApproved FeeStatus = "approved"
	FeeRejected FeeStatus = "rejected"
)

// Valid reports whether s is one of the known fee statuses.
func (s FeeStatus) Valid() bool {
	switch s {
	case FeeUnpaid, FeePending, FeeApproved, FeeRejected:
		return true
	}
	return false
}

// feeTransitions is the closed transition table for the fee lifecycle.
// unpaid advances only through a verified checkout; pending is resolved
// only by a manager decision. approved and rejected are terminal.
var feeTransitions = map[FeeStatus][]FeeStatus{
	FeeUnpaid:  {FeePending},
	FeePending: {FeeApproved, FeeRejected},
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s FeeStatus) CanTransitionTo(next FeeStatus) bool {
	for _, allowed := range feeTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type LoanApplication struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// LoanID references a loan by its hex id. It is stored by value; the loan
	// may be deleted out from under it.
	LoanID         string     `bson:"loanId" json:"loanId"`
	LoanTitle      string     `bson:"loanTitle,omitempty" json:"loanTitle,omitempty"`
	ApplicantEmail string     `bson:"applicantEmail" json:"applicantEmail"`
	Amount         float64    `bson:"amount,omitempty" json:"amount,omitempty"`
	FeeStatus      FeeStatus  `bson:"feeStatus" json:"feeStatus"`
	ApprovedAt     *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	PaidAt         *time.Time `bson:"paid_at,omitempty" json:"paid_at,omitempty"`
	TransactionID  string     `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
}
