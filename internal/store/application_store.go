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

type ApplicationStore struct {
	col *mongo.Collection
}

func NewApplicationStore(db *mongo.Database) *ApplicationStore {
	return &ApplicationStore{col: db.Collection("loanApplications")}
}

// List returns applications newest first, optionally filtered by applicant
// email, exact fee status and a case-insensitive loan-title substring.
func (s *ApplicationStore) List(ctx context.Context, applicantEmail string, feeStatus models.FeeStatus, searchText string) ([]models.LoanApplication, error) {
	filter := bson.M{}
	if applicantEmail != "" {
		filter["applicantEmail"] = applicantEmail
	}
	if feeStatus != "" {
		filter["feeStatus"] = feeStatus
	}
	if searchText != "" {
		filter["loanTitle"] = bson.M{"$regex": searchText, "$options": "i"}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var applications []models.LoanApplication
	if err = cursor.All(ctx, &applications); err != nil {
		return nil, err
	}
	if applications == nil {
		applications = make([]models.LoanApplication, 0)
	}
	return applications, nil
}

func (s *ApplicationStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LoanApplication, error) {
	var app models.LoanApplication
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByLoanAndEmail locates the application a checkout session pays for.
func (s *ApplicationStore) FindByLoanAndEmail(ctx context.Context, loanID, applicantEmail string) (*models.LoanApplication, error) {
	var app models.LoanApplication
	filter := bson.M{"loanId": loanID, "applicantEmail": applicantEmail}
	if err := s.col.FindOne(ctx, filter).Decode(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

// CountByLoanID counts the applications still referencing a loan.
func (s *ApplicationStore) CountByLoanID(ctx context.Context, loanID string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"loanId": loanID})
}

func (s *ApplicationStore) Insert(ctx context.Context, app *models.LoanApplication) error {
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	_, err := s.col.InsertOne(ctx, app)
	return err
}

// Decide records a manager decision, stamping approvedAt regardless of
// whether the decision is an approval or a rejection.
func (s *ApplicationStore) Decide(ctx context.Context, id primitive.ObjectID, status models.FeeStatus, decidedAt time.Time) (int64, error) {
	update := bson.M{"$set": bson.M{
		"feeStatus":  status,
		"approvedAt": decidedAt,
	}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// MarkPaid advances the fee to pending after a verified checkout, recording
// the payment time and the processor's transaction id.
func (s *ApplicationStore) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string, paidAt time.Time) (int64, error) {
	update := bson.M{"$set": bson.M{
		"feeStatus":     models.FeePending,
		"paid_at":       paidAt,
		"transactionId": transactionID,
	}}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (s *ApplicationStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
