package mongodb

import (
	"context"
	"time"

	"github.com/pumppot-labs/pumppot-verifier/internal/models"
	"github.com/pumppot-labs/pumppot-verifier/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VerificationRunRepository implements the repositories.VerificationRunRepository interface
type VerificationRunRepository struct {
	collection *mongo.Collection
}

// NewVerificationRunRepository creates a new VerificationRunRepository
func NewVerificationRunRepository(db *mongo.Database) repositories.VerificationRunRepository {
	return &VerificationRunRepository{
		collection: db.Collection("verification_runs"),
	}
}

// Create inserts a new verification run
func (r *VerificationRunRepository) Create(ctx context.Context, run *models.VerificationRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, run)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		run.ID = id
	}
	return nil
}

// FindByID finds a verification run by ID
func (r *VerificationRunRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.VerificationRun, error) {
	var run models.VerificationRun
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// FindByCycleID finds all verification runs recorded for a cycle
func (r *VerificationRunRepository) FindByCycleID(ctx context.Context, cycleID string) ([]*models.VerificationRun, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"cycleId": cycleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []*models.VerificationRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// FindRecent finds verification runs with pagination, newest first
func (r *VerificationRunRepository) FindRecent(ctx context.Context, page, limit int) ([]*models.VerificationRun, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []*models.VerificationRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// Count counts all verification runs
func (r *VerificationRunRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
