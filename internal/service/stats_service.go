package service

import (
	"context"
	"errors"
	"log"
	"time"

	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	workoutBaseXP   = 50
	streakBonusXP   = 5
	workoutMaxXP    = 100
	leaderboardSize = 10
)

// ErrAlreadyWorkedOut signals the once-per-day completion guard.
var ErrAlreadyWorkedOut = errors.New("already worked out today")

// LeaderboardEntry is one ranked row, joined with the member's name.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	XP    int    `json:"xp"`
	Level int    `json:"level"`
}

// StatsService tracks workout completions, XP, streaks and badges.
type StatsService interface {
	CompleteWorkout(ctx context.Context, memberID primitive.ObjectID) (stats *domain.MemberStats, xpEarned int, err error)
	GetStats(ctx context.Context, memberID primitive.ObjectID) (*domain.MemberStats, error)
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}

// statsService implements the StatsService interface.
type statsService struct {
	statsRepo  repository.StatsRepository
	memberRepo repository.MemberRepository
	now        func() time.Time
}

// NewStatsService creates a new instance of statsService.
func NewStatsService(statsRepo repository.StatsRepository, memberRepo repository.MemberRepository) StatsService {
	return &statsService{
		statsRepo:  statsRepo,
		memberRepo: memberRepo,
		now:        time.Now,
	}
}

// CompleteWorkout records one workout for today. A second completion on the
// same day returns ErrAlreadyWorkedOut. XP is 50 plus a small streak bonus,
// capped at 100 per workout.
func (s *statsService) CompleteWorkout(ctx context.Context, memberID primitive.ObjectID) (*domain.MemberStats, int, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrMemberNotFound
		}
		return nil, 0, err
	}

	stats, err := s.statsRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, 0, err
		}
		stats = &domain.MemberStats{MemberID: memberID, Level: 1, Badges: []domain.Badge{}}
	}

	now := s.now().UTC()
	if stats.LastWorkoutAt != nil && sameDay(*stats.LastWorkoutAt, now) {
		return stats, 0, ErrAlreadyWorkedOut
	}

	if stats.LastWorkoutAt != nil && sameDay(stats.LastWorkoutAt.AddDate(0, 0, 1), now) {
		stats.Streak++
	} else {
		stats.Streak = 1
	}

	xpEarned := workoutBaseXP + streakBonusXP*(stats.Streak-1)
	if xpEarned > workoutMaxXP {
		xpEarned = workoutMaxXP
	}

	stats.XP += xpEarned
	stats.Level = domain.LevelForXP(stats.XP)
	stats.TotalWorkouts++
	stats.LastWorkoutAt = &now
	stats.Badges = awardBadges(stats)

	if err := s.statsRepo.Upsert(ctx, stats); err != nil {
		return nil, 0, err
	}
	return stats, xpEarned, nil
}

// GetStats returns the member's stats; a member who never completed a
// workout gets a zeroed level-1 row without persisting anything.
func (s *statsService) GetStats(ctx context.Context, memberID primitive.ObjectID) (*domain.MemberStats, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	stats, err := s.statsRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.MemberStats{MemberID: memberID, Level: 1, Badges: []domain.Badge{}}, nil
		}
		return nil, err
	}
	return stats, nil
}

// Leaderboard returns the top members by XP with their names joined in.
func (s *statsService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	leaders, err := s.statsRepo.TopByXP(ctx, leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(leaders))
	for _, l := range leaders {
		member, err := s.memberRepo.GetByID(ctx, l.MemberID)
		if err != nil {
			// Stats rows for deleted members are skipped, not fatal.
			if !errors.Is(err, repository.ErrNotFound) {
				log.Printf("ERROR: Failed to load member %s for leaderboard: %v", l.MemberID.Hex(), err)
			}
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Name:  member.Name,
			XP:    l.XP,
			Level: l.Level,
		})
	}
	return entries, nil
}

// awardBadges appends newly earned badges, never removing existing ones.
func awardBadges(stats *domain.MemberStats) []domain.Badge {
	milestones := []struct {
		earned bool
		badge  domain.Badge
	}{
		{stats.TotalWorkouts >= 1, domain.Badge{Code: "first-workout", Name: "First Workout", Icon: "💪"}},
		{stats.TotalWorkouts >= 10, domain.Badge{Code: "ten-strong", Name: "Ten Strong", Icon: "🏋️"}},
		{stats.TotalWorkouts >= 50, domain.Badge{Code: "fifty-club", Name: "Fifty Club", Icon: "🏆"}},
		{stats.Streak >= 7, domain.Badge{Code: "week-streak", Name: "Week Streak", Icon: "🔥"}},
		{stats.Streak >= 30, domain.Badge{Code: "month-streak", Name: "Month Streak", Icon: "⚡"}},
	}

	badges := stats.Badges
	for _, m := range milestones {
		if !m.earned || hasBadge(badges, m.badge.Code) {
			continue
		}
		badges = append(badges, m.badge)
	}
	return badges
}

func hasBadge(badges []domain.Badge, code string) bool {
	for _, b := range badges {
		if b.Code == code {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
