package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

// DeliveryJournal records external-channel send attempts. It is an append-only
// audit trail: writes are best-effort and never part of an engagement
// transaction.
type DeliveryJournal interface {
	Record(ctx context.Context, attempt *models.DeliveryAttempt) error
	ListForNotification(ctx context.Context, notificationID uint) ([]models.DeliveryAttempt, error)
}

// MongoDeliveryJournal implements DeliveryJournal on MongoDB
type MongoDeliveryJournal struct {
	collection *mongo.Collection
}

// NewMongoDeliveryJournal creates a new MongoDeliveryJournal
func NewMongoDeliveryJournal(db *mongo.Database) *MongoDeliveryJournal {
	return &MongoDeliveryJournal{collection: db.Collection("delivery_journal")}
}

// Record appends a delivery attempt
func (j *MongoDeliveryJournal) Record(ctx context.Context, attempt *models.DeliveryAttempt) error {
	if attempt.AttemptedAt.IsZero() {
		attempt.AttemptedAt = time.Now()
	}
	_, err := j.collection.InsertOne(ctx, attempt)
	return err
}

// ListForNotification retrieves the attempt history for one notification,
// oldest first
func (j *MongoDeliveryJournal) ListForNotification(ctx context.Context, notificationID uint) ([]models.DeliveryAttempt, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "attempted_at", Value: 1}})
	cursor, err := j.collection.Find(ctx, bson.M{"notification_id": notificationID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var attempts []models.DeliveryAttempt
	if err = cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
