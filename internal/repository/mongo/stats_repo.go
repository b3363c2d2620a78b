package mongo

import (
	"context"
	"errors"
	"time"

	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const statsCollectionName = "member_stats"

// mongoStatsRepository implements repository.StatsRepository
type mongoStatsRepository struct {
	collection *mongo.Collection
}

// NewMongoStatsRepository creates a new MemberStats repository backed by MongoDB.
func NewMongoStatsRepository(db *mongo.Database) repository.StatsRepository {
	return &mongoStatsRepository{
		collection: db.Collection(statsCollectionName),
	}
}

// GetByMemberID retrieves the member's stats row, if any.
func (r *mongoStatsRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.MemberStats, error) {
	var stats domain.MemberStats

	err := r.collection.FindOne(ctx, bson.M{"memberId": memberID}).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &stats, nil
}

// Upsert inserts or overwrites the member's stats row.
func (r *mongoStatsRepository) Upsert(ctx context.Context, stats *domain.MemberStats) error {
	if stats.MemberID == primitive.NilObjectID {
		return errors.New("member ID is required")
	}

	filter := bson.M{"memberId": stats.MemberID}
	update := bson.M{
		"$set": bson.M{
			"xp":            stats.XP,
			"level":         stats.Level,
			"streak":        stats.Streak,
			"totalWorkouts": stats.TotalWorkouts,
			"lastWorkoutAt": stats.LastWorkoutAt,
			"badges":        stats.Badges,
			"updatedAt":     time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"memberId": stats.MemberID,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// TopByXP returns up to limit stats rows ordered by XP descending.
func (r *mongoStatsRepository) TopByXP(ctx context.Context, limit int) ([]domain.MemberStats, error) {
	var leaders []domain.MemberStats

	findOptions := options.Find().
		SetSort(bson.D{{Key: "xp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &leaders); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return leaders, nil
}

// DeleteByMemberID removes the member's stats row, if present.
func (r *mongoStatsRepository) DeleteByMemberID(ctx context.Context, memberID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"memberId": memberID})
	return err
}

// EnsureStatsIndexes creates necessary indexes for the member_stats collection.
func EnsureStatsIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// At most one stats row per member.
			Keys:    bson.D{{Key: "memberId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Leaderboard queries sort by xp.
			Keys:    bson.D{{Key: "xp", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
