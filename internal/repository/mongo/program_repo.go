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

const programCollectionName = "programs"

// mongoProgramRepository implements repository.ProgramRepository
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new Program repository backed by MongoDB.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Upsert inserts or fully replaces the member's program. The old day
// sequence and document reference are unreachable afterwards.
func (r *mongoProgramRepository) Upsert(ctx context.Context, program *domain.Program) error {
	if program.MemberID == primitive.NilObjectID {
		return errors.New("member ID is required")
	}
	if len(program.Days) == 0 {
		return errors.New("program days are required")
	}

	filter := bson.M{"memberId": program.MemberID}
	update := bson.M{
		"$set": bson.M{
			"days":      program.Days,
			"objectKey": program.ObjectKey,
			"fileName":  program.FileName,
			"createdAt": program.CreatedAt,
		},
		"$setOnInsert": bson.M{
			"memberId": program.MemberID,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetByMemberID retrieves the member's program, if any.
func (r *mongoProgramRepository) GetByMemberID(ctx context.Context, memberID primitive.ObjectID) (*domain.Program, error) {
	var program domain.Program
	filter := bson.M{"memberId": memberID}

	err := r.collection.FindOne(ctx, filter).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// DeleteByMemberID removes the member's program row, if present.
func (r *mongoProgramRepository) DeleteByMemberID(ctx context.Context, memberID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"memberId": memberID})
	return err
}

// EnsureProgramIndexes creates necessary indexes for the programs collection.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// At most one program per member.
			Keys:    bson.D{{Key: "memberId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
