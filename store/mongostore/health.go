package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"healthtrack-server/models"
	"healthtrack-server/store"
)

type healthDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId"`
	Type         string             `bson:"type"`
	Value        any                `bson:"value"`
	Date         time.Time          `bson:"date"`
	Notes        *string            `bson:"notes,omitempty"`
	Mood         any                `bson:"mood,omitempty"`
	StressLevel  any                `bson:"stressLevel,omitempty"`
	SleepQuality any                `bson:"sleepQuality,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func healthDocToModel(d healthDoc) models.HealthRecord {
	return models.HealthRecord{
		ID:           d.ID.Hex(),
		UserID:       d.UserID.Hex(),
		Type:         d.Type,
		Value:        plainValue(d.Value),
		Date:         d.Date,
		Notes:        d.Notes,
		Mood:         plainValue(d.Mood),
		StressLevel:  plainValue(d.StressLevel),
		SleepQuality: plainValue(d.SleepQuality),
		CreatedAt:    d.CreatedAt,
	}
}

// plainValue widens the numeric BSON types so callers see the same float64
// that JSON decoding produced on the way in.
func plainValue(v any) any {
	switch n := v.(type) {
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return v
	}
}

type HealthStore struct {
	col *mongo.Collection
}

func (s *HealthStore) Create(ctx context.Context, r *models.HealthRecord) error {
	uid, err := objectID(r.UserID)
	if err != nil {
		return err
	}
	doc := healthDoc{
		UserID:       uid,
		Type:         r.Type,
		Value:        r.Value,
		Date:         r.Date,
		Notes:        r.Notes,
		Mood:         r.Mood,
		StressLevel:  r.StressLevel,
		SleepQuality: r.SleepQuality,
		CreatedAt:    r.CreatedAt,
	}
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	r.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *HealthStore) owned(userID, id string) (bson.M, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid, "userId": uid}, nil
}

func (s *HealthStore) Get(ctx context.Context, userID, id string) (*models.HealthRecord, error) {
	filter, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	var doc healthDoc
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	rec := healthDocToModel(doc)
	return &rec, nil
}

func (s *HealthStore) List(ctx context.Context, userID, recordType string) ([]models.HealthRecord, error) {
	uid, err := objectID(userID)
	if err != nil {
		return []models.HealthRecord{}, nil
	}
	filter := bson.M{"userId": uid}
	if recordType != "" {
		filter["type"] = recordType
	}
	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.HealthRecord, 0)
	for cur.Next(ctx) {
		var doc healthDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, healthDocToModel(doc))
	}
	return out, cur.Err()
}

func (s *HealthStore) Update(ctx context.Context, userID, id string, req models.UpdateHealthRecordRequest) (*models.HealthRecord, error) {
	filter, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	if req.Value != nil {
		set["value"] = req.Value
	}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.Mood != nil {
		set["mood"] = req.Mood
	}
	if req.StressLevel != nil {
		set["stressLevel"] = req.StressLevel
	}
	if req.SleepQuality != nil {
		set["sleepQuality"] = req.SleepQuality
	}
	if len(set) == 0 {
		return s.Get(ctx, userID, id)
	}

	var doc healthDoc
	err = s.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err)
	}
	rec := healthDocToModel(doc)
	return &rec, nil
}

func (s *HealthStore) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, s.col, userID, id)
}

func deleteOwned(ctx context.Context, col *mongo.Collection, userID, id string) error {
	uid, err := objectID(userID)
	if err != nil {
		return err
	}
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid, "userId": uid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
