package domain

import (
	"math"
	"time"
)

// ExpiringWindowDays is the number of days before expiry during which a
// membership is reported as "expiring".
const ExpiringWindowDays = 7

// ComputeStatus derives the membership status and days-left from the end
// date and the given reference time. DaysLeft may be negative once the
// membership has lapsed.
//
// Invariant: expired iff daysLeft < 0; expiring iff 0 <= daysLeft <= 7.
func ComputeStatus(endDate, now time.Time) (MembershipStatus, int) {
	daysLeft := int(math.Ceil(endDate.Sub(now).Hours() / 24))

	switch {
	case daysLeft < 0:
		return StatusExpired, daysLeft
	case daysLeft <= ExpiringWindowDays:
		return StatusExpiring, daysLeft
	default:
		return StatusActive, daysLeft
	}
}

// ExtendEndDate returns the end date after applying one renewal increment of
// the given plan, using calendar arithmetic (day-of-month preserved).
// Renewal always extends from the stored end date so unused time is kept.
// An unknown plan leaves the date unchanged.
func ExtendEndDate(from time.Time, plan Plan) time.Time {
	switch plan {
	case PlanMonthly:
		return from.AddDate(0, 1, 0)
	case PlanThreeMonth:
		return from.AddDate(0, 3, 0)
	case PlanYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from
	}
}
