// Package store holds the per-collection MongoDB stores. Each store wraps one
// collection and exposes the few queries its handlers need; handlers never
// touch the driver directly.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/loanlink/loanlink-api/internal/models"
)

type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection("users")}
}

// List returns one page of users whose name contains searchText
// (case-insensitive) along with the total match count. page is 1-based;
// a page past the end yields an empty slice, not an error.
func (s *UserStore) List(ctx context.Context, searchText string, page, limit int64) ([]models.User, int64, error) {
	filter := bson.M{}
	if searchText != "" {
		filter["name"] = bson.M{"$regex": searchText, "$options": "i"}
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = make([]models.User, 0)
	}
	return users, total, nil
}

// FindByEmail returns mongo.ErrNoDocuments when no user has that email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateStatus overwrites the status field and reports how many documents
// matched, so the caller can distinguish a missing user from a no-op.
func (s *UserStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.UserStatus) (int64, error) {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// Suspend writes status, reason and feedback in one update.
func (s *UserStore) Suspend(ctx context.Context, id primitive.ObjectID, status models.UserStatus, reason, feedback string) (int64, error) {
	update := bson.M{"$set": bson.M{
		"status":          status,
		"suspendReason":   reason,
		"suspendFeedback": feedback,
	}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, user)
	return err
}
