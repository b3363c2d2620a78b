package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan is the billing tier determining the renewal increment.
type Plan string

const (
	PlanMonthly    Plan = "monthly"
	PlanThreeMonth Plan = "3-month"
	PlanYearly     Plan = "yearly"
)

// MembershipStatus is derived from the end date on every read, never stored.
type MembershipStatus string

const (
	StatusActive   MembershipStatus = "active"
	StatusExpiring MembershipStatus = "expiring"
	StatusExpired  MembershipStatus = "expired"
)

// Member represents a gym member (athlete).
type Member struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"` // Should be unique
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Plan      Plan               `bson:"plan" json:"plan"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   time.Time          `bson:"endDate" json:"endDate"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
