package mongo

import (
	"context"
	"errors"

	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const requestCollectionName = "program_requests"

// mongoRequestRepository implements repository.ProgramRequestRepository
type mongoRequestRepository struct {
	collection *mongo.Collection
}

// NewMongoRequestRepository creates a new ProgramRequest repository backed by MongoDB.
func NewMongoRequestRepository(db *mongo.Database) repository.ProgramRequestRepository {
	return &mongoRequestRepository{
		collection: db.Collection(requestCollectionName),
	}
}

// Upsert inserts or overwrites the member's request row. The unique memberId
// index collapses concurrent writers onto a single row instead of racing a
// read-then-write sequence.
func (r *mongoRequestRepository) Upsert(ctx context.Context, request *domain.ProgramRequest) error {
	if request.MemberID == primitive.NilObjectID {
		return errors.New("member ID is required")
	}

	filter := bson.M{"memberId": request.MemberID}
	update := bson.M{
		"$set": bson.M{
			"goal":        request.Goal,
			"level":       request.Level,
			"status":      request.Status,
			"requestedAt": request.RequestedAt,
		},
		"$setOnInsert": bson.M{
			"memberId": request.MemberID,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetByMemberID retrieves the member's request, if any.
func (r *mongoRequestRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.ProgramRequest, error) {
	var request domain.ProgramRequest
	filter := bson.M{"memberId": memberID}

	err := r.collection.FindOne(ctx, filter).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// SetStatus updates the status of the member's request.
func (r *mongoRequestRepository) SetStatus(ctx context.Context, memberID primitive.ObjectID, status domain.RequestStatus) error {
	filter := bson.M{"memberId": memberID}
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByMemberID removes the member's request row, if present.
func (r *mongoRequestRepository) DeleteByMemberID(ctx context.Context, memberID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"memberId": memberID})
	return err
}

// EnsureRequestIndexes creates necessary indexes for the program_requests collection.
func EnsureRequestIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// At most one request per member.
			Keys:    bson.D{{Key: "memberId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
