package repository

import (
	"context"

	"ironpeak/gym-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound       = RepositoryError("not found")
	ErrDuplicateEmail = RepositoryError("email already exists")
	ErrDeleteFailed   = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// MemberRepository defines the interface for interacting with member data.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error) // case-insensitive exact match
	GetAll(ctx context.Context) ([]domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProgramRequestRepository manages the single request row each member may hold.
type ProgramRequestRepository interface {
	// Upsert inserts the request or overwrites the member's existing one.
	// The unique index on memberId guarantees at most one row per member.
	Upsert(ctx context.Context, request *domain.ProgramRequest) error
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.ProgramRequest, error)
	SetStatus(ctx context.Context, memberID primitive.ObjectID, status domain.RequestStatus) error
	DeleteByMemberID(ctx context.Context, memberID primitive.ObjectID) error
}

// ProgramRepository manages the single program each member may hold.
type ProgramRepository interface {
	// Upsert inserts the program or replaces the member's existing one
	// entirely (days and document reference).
	Upsert(ctx context.Context, program *domain.Program) error
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.Program, error)
	DeleteByMemberID(ctx context.Context, memberID primitive.ObjectID) error
}

// ExerciseVideoRepository defines the interface for the exercise video library.
type ExerciseVideoRepository interface {
	Create(ctx context.Context, video *domain.ExerciseVideo) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseVideo, error)
	GetAll(ctx context.Context) ([]domain.ExerciseVideo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// StatsRepository manages per-member workout stats.
type StatsRepository interface {
	GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.MemberStats, error)
	Upsert(ctx context.Context, stats *domain.MemberStats) error
	TopByXP(ctx context.Context, limit int) ([]domain.MemberStats, error)
	DeleteByMemberID(ctx context.Context, memberID primitive.ObjectID) error
}

// UserRepository defines the interface for interacting with login accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
