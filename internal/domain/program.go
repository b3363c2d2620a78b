package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseType distinguishes strength work from cardio in a program.
type ExerciseType string

const (
	ExerciseStrength ExerciseType = "strength"
	ExerciseCardio   ExerciseType = "cardio"
)

// ProgramExercise is a single row within a program day.
type ProgramExercise struct {
	Type     ExerciseType `bson:"type,omitempty" json:"type,omitempty"`
	Name     string       `bson:"name" json:"name"`
	SetsReps string       `bson:"setsReps" json:"setsReps"`
	Notes    string       `bson:"notes,omitempty" json:"notes,omitempty"`
}

// ProgramDay is a named, ordered group of exercises.
type ProgramDay struct {
	DayName   string            `bson:"dayName" json:"dayName"`
	Exercises []ProgramExercise `bson:"exercises" json:"exercises"`
}

// Program is a coach-authored workout assignment. At most one exists per
// member; creating a new one replaces the old days and document.
type Program struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID  primitive.ObjectID `bson:"memberId" json:"memberId"` // Unique index
	Days      []ProgramDay       `bson:"days" json:"days"`
	ObjectKey string             `bson:"objectKey" json:"-"` // Key of the generated PDF in blob storage
	FileName  string             `bson:"fileName" json:"fileName"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// RequestStatus tracks a program request through its lifecycle.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestCompleted RequestStatus = "completed"
)

// ProgramRequest is an athlete's ask for a new program. A member holds at
// most one request row; re-requesting overwrites it in place.
type ProgramRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID    primitive.ObjectID `bson:"memberId" json:"memberId"` // Unique index
	Goal        string             `bson:"goal" json:"goal"`
	Level       string             `bson:"level" json:"level"`
	Status      RequestStatus      `bson:"status" json:"status"`
	RequestedAt time.Time          `bson:"requestedAt" json:"requestedAt"`
}
