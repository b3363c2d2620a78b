package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// levelThresholds holds the cumulative XP needed to leave each level.
// Level n covers xp in [levelThresholds[n-1], levelThresholds[n]).
var levelThresholds = []int{0, 100, 300, 600, 1000, 1500, 2500, 4000, 6000, 10000}

// LevelForXP maps accumulated XP onto a level from 1 to 10.
func LevelForXP(xp int) int {
	level := 1
	for i := 1; i < len(levelThresholds); i++ {
		if xp >= levelThresholds[i] {
			level = i + 1
		}
	}
	return level
}

// Badge identifies an earned achievement.
type Badge struct {
	Code string `bson:"code" json:"code"`
	Name string `bson:"name" json:"name"`
	Icon string `bson:"icon" json:"icon"`
}

// MemberStats accumulates workout gamification state for one member.
// At most one row exists per member.
type MemberStats struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID      primitive.ObjectID `bson:"memberId" json:"memberId"` // Unique index
	XP            int                `bson:"xp" json:"xp"`
	Level         int                `bson:"level" json:"level"`
	Streak        int                `bson:"streak" json:"streak"`
	TotalWorkouts int                `bson:"totalWorkouts" json:"totalWorkouts"`
	LastWorkoutAt *time.Time         `bson:"lastWorkoutAt,omitempty" json:"lastWorkoutAt,omitempty"`
	Badges        []Badge            `bson:"badges" json:"badges"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
