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

type medicationDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        primitive.ObjectID `bson:"userId"`
	Name          string             `bson:"name"`
	Dosage        string             `bson:"dosage"`
	Frequency     string             `bson:"frequency"`
	Time          string             `bson:"time"`
	RemainingDays int                `bson:"remainingDays"`
	Notes         string             `bson:"notes"`
	IsActive      bool               `bson:"isActive"`
	LastTaken     *time.Time         `bson:"lastTaken"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func medicationDocToModel(d medicationDoc) models.Medication {
	return models.Medication{
		ID:            d.ID.Hex(),
		UserID:        d.UserID.Hex(),
		Name:          d.Name,
		Dosage:        d.Dosage,
		Frequency:     d.Frequency,
		Time:          d.Time,
		RemainingDays: d.RemainingDays,
		Notes:         d.Notes,
		IsActive:      d.IsActive,
		LastTaken:     d.LastTaken,
		CreatedAt:     d.CreatedAt,
	}
}

type MedicationStore struct {
	col *mongo.Collection
}

func (s *MedicationStore) Create(ctx context.Context, m *models.Medication) error {
	uid, err := objectID(m.UserID)
	if err != nil {
		return err
	}
	res, err := s.col.InsertOne(ctx, medicationDoc{
		UserID:        uid,
		Name:          m.Name,
		Dosage:        m.Dosage,
		Frequency:     m.Frequency,
		Time:          m.Time,
		RemainingDays: m.RemainingDays,
		Notes:         m.Notes,
		IsActive:      m.IsActive,
		LastTaken:     m.LastTaken,
		CreatedAt:     m.CreatedAt,
	})
	if err != nil {
		return err
	}
	m.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (s *MedicationStore) List(ctx context.Context, userID string) ([]models.Medication, error) {
	uid, err := objectID(userID)
	if err != nil {
		return []models.Medication{}, nil
	}
	cur, err := s.col.Find(ctx, bson.M{"userId": uid}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Medication, 0)
	for cur.Next(ctx) {
		var doc medicationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, medicationDocToModel(doc))
	}
	return out, cur.Err()
}

func (s *MedicationStore) Update(ctx context.Context, userID, id string, req models.UpdateMedicationRequest) (*models.Medication, error) {
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
	if req.Dosage != nil {
		set["dosage"] = *req.Dosage
	}
	if req.Frequency != nil {
		set["frequency"] = *req.Frequency
	}
	if req.Time != nil {
		set["time"] = *req.Time
	}
	if req.RemainingDays != nil {
		set["remainingDays"] = *req.RemainingDays
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if req.LastTaken != nil {
		set["lastTaken"] = *req.LastTaken
	}

	filter := bson.M{"_id": oid, "userId": uid}
	var doc medicationDoc
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
	med := medicationDocToModel(doc)
	return &med, nil
}

func (s *MedicationStore) Delete(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, s.col, userID, id)
}
