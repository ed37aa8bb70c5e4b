package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"healthtrack-server/models"
)

type exerciseDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	Duration  int                `bson:"duration"`
	Date      time.Time          `bson:"date"`
	Notes     string             `bson:"notes"`
	Points    int                `bson:"points"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func exerciseDocToModel(d exerciseDoc) models.Exercise {
	return models.Exercise{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Name:      d.Name,
		Type:      d.Type,
		Duration:  d.Duration,
		Date:      d.Date,
		Notes:     d.Notes,
		Points:    d.Points,
		CreatedAt: d.CreatedAt,
	}
}

type ExerciseStore struct {
	col *mongo.Collection
}

func (s *ExerciseStore) Create(ctx context.Context, e *models.Exercise) error {
	uid, err := objectID(e.UserID)
	if err != nil {
		return err
	}
	res, err := s.col.InsertOne(ctx, exerciseDoc{
		UserID:    uid,
		Name:      e.Name,
		Type:      e.Type,
		Duration:  e.Duration,
		Date:      e.Date,
		Notes:     e.Notes,
		Points:    e.Points,
		CreatedAt: e.CreatedAt,
	})
	if err != nil {
		return err
	}
	e.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *ExerciseStore) List(ctx context.Context, userID string) ([]models.Exercise, error) {
	uid, err := objectID(userID)
	if err != nil {
		return []models.Exercise{}, nil
	}
	cur, err := s.col.Find(ctx, bson.M{"userId": uid}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Exercise, 0)
	for cur.Next(ctx) {
		var doc exerciseDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, exerciseDocToModel(doc))
	}
	return out, cur.Err()
}

func (s *ExerciseStore) Update(ctx context.Context, userID, id string, req models.UpdateExerciseRequest) (*models.Exercise, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	if req.Duration != nil {
		set["duration"] = *req.Duration
	}
	if req.Date != nil {
		set["date"] = *req.Date
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}

	filter := bson.M{"_id": oid, "userId": uid}
	var doc exerciseDoc
	if len(set) == 0 {
		err = s.col.FindOne(ctx, filter).Decode(&doc)
	} else {
		err = s.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&doc)
	}
	if err != nil {
		return nil, notFound(err)
	}
	ex := exerciseDocToModel(doc)
	return &ex, nil
}

func (s *ExerciseStore) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, s.col, userID, id)
}
