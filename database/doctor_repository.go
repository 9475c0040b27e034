package database

import (
	"context"
	"errors"
	"fmt"

	"medilink-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DoctorRepository is the Mongo-backed doctor roster.
type DoctorRepository struct {
	collection *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) *DoctorRepository {
	return &DoctorRepository{
		collection: db.Collection(doctorsCollection),
	}
}

// ListDoctors returns the full roster. Any read failure fails the whole call.
func (r *DoctorRepository) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.DoctorRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}

	doctors := make([]models.Doctor, 0, len(records))
	for _, rec := range records {
		doctors = append(doctors, rec.ToDoctor())
	}
	return doctors, nil
}

// GetDoctor returns a single doctor by id
func (r *DoctorRepository) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	var rec models.DoctorRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor %s: %w", id, err)
	}

	doctor := rec.ToDoctor()
	return &doctor, nil
}

// Count returns the number of stored doctors
func (r *DoctorRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return n, nil
}

// UpsertMany inserts or replaces doctors by id
func (r *DoctorRepository) UpsertMany(ctx context.Context, doctors []models.Doctor) (int, error) {
	if len(doctors) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(doctors))
	for _, d := range doctors {
		rec := models.NewDoctorRecord(d)
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": rec.ID}).
			SetReplacement(rec).
			SetUpsert(true))
	}

	res, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to upsert doctors: %w", err)
	}
	return int(res.UpsertedCount + res.MatchedCount), nil
}

// DeleteAll removes every doctor
func (r *DoctorRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete doctors: %w", err)
	}
	return res.DeletedCount, nil
}
