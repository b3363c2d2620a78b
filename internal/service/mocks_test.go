package service

import (
	"context"
	"time"

	"ironpeak/gym-app/internal/document"
	"ironpeak/gym-app/internal/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Mock MemberRepository ---

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error) {
	args := m.Called(ctx, member)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if member, ok := args.Get(0).(*domain.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	args := m.Called(ctx, email)
	if member, ok := args.Get(0).(*domain.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepository) GetAll(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	if members, ok := args.Get(0).([]domain.Member); ok {
		return members, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock ProgramRequestRepository ---

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Upsert(ctx context.Context, request *domain.ProgramRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.ProgramRequest, error) {
	args := m.Called(ctx, memberID)
	if request, ok := args.Get(0).(*domain.ProgramRequest); ok {
		return request, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRequestRepository) SetStatus(ctx context.Context, memberID primitive.ObjectID, status domain.RequestStatus) error {
	args := m.Called(ctx, memberID, status)
	return args.Error(0)
}

func (m *MockRequestRepository) DeleteByMemberID(ctx context.Context, memberID primitive.ObjectID) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

// --- Mock ProgramRepository ---

type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) Upsert(ctx context.Context, program *domain.Program) error {
	args := m.Called(ctx, program)
	return args.Error(0)
}

func (m *MockProgramRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.Program, error) {
	args := m.Called(ctx, memberID)
	if program, ok := args.Get(0).(*domain.Program); ok {
		return program, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgramRepository) DeleteByMemberID(ctx context.Context, memberID primitive.ObjectID) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

// --- Mock ExerciseVideoRepository ---

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Create(ctx context.Context, video *domain.ExerciseVideo) (primitive.ObjectID, error) {
	args := m.Called(ctx, video)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockVideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseVideo, error) {
	args := m.Called(ctx, id)
	if video, ok := args.Get(0).(*domain.ExerciseVideo); ok {
		return video, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) GetAll(ctx context.Context) ([]domain.ExerciseVideo, error) {
	args := m.Called(ctx)
	if videos, ok := args.Get(0).([]domain.ExerciseVideo); ok {
		return videos, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVideoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock StatsRepository ---

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.MemberStats, error) {
	args := m.Called(ctx, memberID)
	if stats, ok := args.Get(0).(*domain.MemberStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStatsRepository) Upsert(ctx context.Context, stats *domain.MemberStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepository) TopByXP(ctx context.Context, limit int) ([]domain.MemberStats, error) {
	args := m.Called(ctx, limit)
	if stats, ok := args.Get(0).([]domain.MemberStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStatsRepository) DeleteByMemberID(ctx context.Context, memberID primitive.ObjectID) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- Mock FileStorage ---

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, objectKey string, contentType string, data []byte) error {
	args := m.Called(ctx, objectKey, contentType, data)
	return args.Error(0)
}

func (m *MockFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

// --- Fake document renderer ---

type fakeRenderer struct {
	err error
}

func (r *fakeRenderer) Render(layout document.Layout) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-fake"), nil
}
