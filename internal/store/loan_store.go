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

type LoanStore struct {
	col *mongo.Collection
}

func NewLoanStore(db *mongo.Database) *LoanStore {
	return &LoanStore{col: db.Collection("loans")}
}

// List returns loans newest first, optionally filtered by the exact manager
// email and by a case-insensitive title substring.
func (s *LoanStore) List(ctx context.Context, managerEmail, searchText string) ([]models.Loan, error) {
	filter := bson.M{}
	if managerEmail != "" {
		filter["managerEmail"] = managerEmail
	}
	if searchText != "" {
		filter["title"] = bson.M{"$regex": searchText, "$options": "i"}
	}
	return s.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// Featured returns at most three home-page loans, newest first.
func (s *LoanStore) Featured(ctx context.Context) ([]models.Loan, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(3)
	return s.find(ctx, bson.M{"showHome": true}, findOptions)
}

func (s *LoanStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Loan, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var loans []models.Loan
	if err = cursor.All(ctx, &loans); err != nil {
		return nil, err
	}
	if loans == nil {
		loans = make([]models.Loan, 0)
	}
	return loans, nil
}

func (s *LoanStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Loan, error) {
	var loan models.Loan
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&loan); err != nil {
		return nil, err
	}
	return &loan, nil
}

// SetShowHome flips the featured flag and reports the match count.
func (s *LoanStore) SetShowHome(ctx context.Context, id primitive.ObjectID, showHome bool) (int64, error) {
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"showHome": showHome}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (s *LoanStore) Insert(ctx context.Context, loan *models.Loan) error {
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, loan)
	return err
}

// Delete removes the loan and reports how many documents were deleted.
func (s *LoanStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
