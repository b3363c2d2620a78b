package service

import (
	"context"
	"testing"
	"time"

	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newStatsServiceForTest(now time.Time) (*statsService, *MockStatsRepository, *MockMemberRepository) {
	statsRepo := new(MockStatsRepository)
	memberRepo := new(MockMemberRepository)
	svc := NewStatsService(statsRepo, memberRepo).(*statsService)
	svc.now = func() time.Time { return now }
	return svc, statsRepo, memberRepo
}

func TestCompleteWorkoutFirstTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	svc, statsRepo, memberRepo := newStatsServiceForTest(now)
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	memberRepo.On("GetByID", ctx, memberID).Return(&domain.Member{ID: memberID}, nil).Once()
	statsRepo.On("GetByMemberID", ctx, memberID).Return(nil, repository.ErrNotFound).Once()
	statsRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.MemberStats")).Return(nil).Once()

	stats, xpEarned, err := svc.CompleteWorkout(ctx, memberID)

	assert.NoError(t, err)
	assert.Equal(t, 50, xpEarned)
	assert.Equal(t, 50, stats.XP)
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 1, stats.TotalWorkouts)
	assert.Equal(t, 1, stats.Level)
	assert.Len(t, stats.Badges, 1)
	assert.Equal(t, "first-workout", stats.Badges[0].Code)
}

func TestCompleteWorkoutTwiceSameDay(t *testing.T) {
	now := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	svc, statsRepo, memberRepo := newStatsServiceForTest(now)
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	morning := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	memberRepo.On("GetByID", ctx, memberID).Return(&domain.Member{ID: memberID}, nil).Once()
	statsRepo.On("GetByMemberID", ctx, memberID).Return(&domain.MemberStats{
		MemberID:      memberID,
		XP:            50,
		Level:         1,
		Streak:        1,
		TotalWorkouts: 1,
		LastWorkoutAt: &morning,
	}, nil).Once()

	_, xpEarned, err := svc.CompleteWorkout(ctx, memberID)

	assert.ErrorIs(t, err, ErrAlreadyWorkedOut)
	assert.Zero(t, xpEarned)
	statsRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCompleteWorkoutConsecutiveDayGrowsStreak(t *testing.T) {
	now := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	svc, statsRepo, memberRepo := newStatsServiceForTest(now)
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	yesterday := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	memberRepo.On("GetByID", ctx, memberID).Return(&domain.Member{ID: memberID}, nil).Once()
	statsRepo.On("GetByMemberID", ctx, memberID).Return(&domain.MemberStats{
		MemberID:      memberID,
		XP:            50,
		Level:         1,
		Streak:        1,
		TotalWorkouts: 1,
		LastWorkoutAt: &yesterday,
		Badges:        []domain.Badge{{Code: "first-workout"}},
	}, nil).Once()
	statsRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.MemberStats")).Return(nil).Once()

	stats, xpEarned, err := svc.CompleteWorkout(ctx, memberID)

	assert.NoError(t, err)
	assert.Equal(t, 2, stats.Streak)
	assert.Equal(t, 55, xpEarned) // 50 base + 5 for the second streak day
	assert.Equal(t, 105, stats.XP)
	assert.Equal(t, 2, stats.Level) // crossed the 100 XP threshold
}

func TestCompleteWorkoutAfterGapResetsStreak(t *testing.T) {
	now := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	svc, statsRepo, memberRepo := newStatsServiceForTest(now)
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	lastWeek := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	memberRepo.On("GetByID", ctx, memberID).Return(&domain.Member{ID: memberID}, nil).Once()
	statsRepo.On("GetByMemberID", ctx, memberID).Return(&domain.MemberStats{
		MemberID:      memberID,
		XP:            200,
		Level:         2,
		Streak:        4,
		TotalWorkouts: 4,
		LastWorkoutAt: &lastWeek,
		Badges:        []domain.Badge{{Code: "first-workout"}},
	}, nil).Once()
	statsRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.MemberStats")).Return(nil).Once()

	stats, xpEarned, err := svc.CompleteWorkout(ctx, memberID)

	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 50, xpEarned)
}

func TestCompleteWorkoutXPIsCapped(t *testing.T) {
	now := time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)
	svc, statsRepo, memberRepo := newStatsServiceForTest(now)
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	yesterday := time.Date(2024, 6, 19, 9, 0, 0, 0, time.UTC)
	memberRepo.On("GetByID", ctx, memberID).Return(&domain.Member{ID: memberID}, nil).Once()
	// A 15-day streak would earn 50 + 5*14 = 120, over the 100 cap.
	statsRepo.On("GetByMemberID", ctx, memberID).Return(&domain.MemberStats{
		MemberID:      memberID,
		XP:            1000,
		Level:         5,
		Streak:        14,
		TotalWorkouts: 14,
		LastWorkoutAt: &yesterday,
		Badges:        []domain.Badge{{Code: "first-workout"}, {Code: "ten-strong"}, {Code: "week-streak"}},
	}, nil).Once()
	statsRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.MemberStats")).Return(nil).Once()

	stats, xpEarned, err := svc.CompleteWorkout(ctx, memberID)

	assert.NoError(t, err)
	assert.Equal(t, 15, stats.Streak)
	assert.Equal(t, 100, xpEarned)
	assert.Equal(t, 1100, stats.XP)
}

func TestCompleteWorkoutAwardsStreakBadgeOnce(t *testing.T) {
	now := time.Date(2024, 6, 8, 9, 0, 0, 0, time.UTC)
	svc, statsRepo, memberRepo := newStatsServiceForTest(now)
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	yesterday := time.Date(2024, 6, 7, 9, 0, 0, 0, time.UTC)
	memberRepo.On("GetByID", ctx, memberID).Return(&domain.Member{ID: memberID}, nil).Once()
	statsRepo.On("GetByMemberID", ctx, memberID).Return(&domain.MemberStats{
		MemberID:      memberID,
		XP:            330,
		Level:         3,
		Streak:        6,
		TotalWorkouts: 6,
		LastWorkoutAt: &yesterday,
		Badges:        []domain.Badge{{Code: "first-workout"}},
	}, nil).Once()
	statsRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.MemberStats")).Return(nil).Once()

	stats, _, err := svc.CompleteWorkout(ctx, memberID)

	assert.NoError(t, err)
	assert.Equal(t, 7, stats.Streak)

	codes := make([]string, 0, len(stats.Badges))
	for _, b := range stats.Badges {
		codes = append(codes, b.Code)
	}
	assert.Contains(t, codes, "week-streak")
	assert.Equal(t, []string{"first-workout", "week-streak"}, codes)
}

func TestGetStatsForMemberWithoutHistory(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, statsRepo, memberRepo := newStatsServiceForTest(now)
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	memberRepo.On("GetByID", ctx, memberID).Return(&domain.Member{ID: memberID}, nil).Once()
	statsRepo.On("GetByMemberID", ctx, memberID).Return(nil, repository.ErrNotFound).Once()

	stats, err := svc.GetStats(ctx, memberID)

	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Level)
	assert.Zero(t, stats.XP)
	assert.NotNil(t, stats.Badges)
	// Nothing is persisted for a member who never worked out.
	statsRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestLeaderboardSkipsDeletedMembers(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, statsRepo, memberRepo := newStatsServiceForTest(now)
	ctx := context.Background()

	first := primitive.NewObjectID()
	ghost := primitive.NewObjectID()
	statsRepo.On("TopByXP", ctx, leaderboardSize).Return([]domain.MemberStats{
		{MemberID: first, XP: 900, Level: 4},
		{MemberID: ghost, XP: 500, Level: 3},
	}, nil).Once()
	memberRepo.On("GetByID", ctx, first).Return(&domain.Member{ID: first, Name: "Anna"}, nil).Once()
	memberRepo.On("GetByID", ctx, ghost).Return(nil, repository.ErrNotFound).Once()

	entries, err := svc.Leaderboard(ctx)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Anna", entries[0].Name)
	assert.Equal(t, 900, entries[0].XP)
}
