package paymentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickmechanic/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "payment_sessions"

type mongoPaymentSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentSessionRepo binds the payment_sessions collection of db and
// ensures its indexes.
func NewMongoPaymentSessionRepo(db *mongo.Database) (PaymentSessionRepository, error) {
	repo := &mongoPaymentSessionRepo{coll: db.Collection(collectionName)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *mongoPaymentSessionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// At most one active session per draft.
	activeOpts := options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.M{"active": true}).
		SetName("draft_active_unique")

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "draft_id", Value: 1}}, Options: activeOpts},
		{Keys: bson.D{{Key: "order_id", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create payment session indexes: %w", err)
	}
	return nil
}

func (r *mongoPaymentSessionRepo) Create(ctx context.Context, ps models.PaymentSession) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, ps); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrActiveExists
		}
		return fmt.Errorf("failed to insert payment session: %w", err)
	}
	return nil
}

func (r *mongoPaymentSessionRepo) findOne(ctx context.Context, filter bson.M) (*models.PaymentSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ps models.PaymentSession
	if err := r.coll.FindOne(ctx, filter).Decode(&ps); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment session: %w", err)
	}
	return &ps, nil
}

func (r *mongoPaymentSessionRepo) GetByID(ctx context.Context, id string) (*models.PaymentSession, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoPaymentSessionRepo) GetActiveByDraft(ctx context.Context, draftID string) (*models.PaymentSession, error) {
	return r.findOne(ctx, bson.M{"draft_id": draftID, "active": true})
}

func (r *mongoPaymentSessionRepo) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.PaymentSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": status, "updated_at": time.Now()}
	if status.Terminal() {
		set["active"] = false
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ps models.PaymentSession
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&ps)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update payment session %s: %w", id, err)
	}
	return &ps, nil
}
