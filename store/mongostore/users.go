package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"healthtrack-server/models"
	"healthtrack-server/store"
)

type userDoc struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	Name           string               `bson:"name"`
	Email          string               `bson:"email"`
	Password       string               `bson:"password"`
	Age            *int                 `bson:"age"`
	Height         *float64             `bson:"height"`
	Weight         *float64             `bson:"weight"`
	Gender         string               `bson:"gender"`
	ActivityLevel  string               `bson:"activityLevel"`
	AvatarURL      *string              `bson:"avatarUrl"`
	Role           string               `bson:"role"`
	Points         int                  `bson:"points"`
	CurrentStreak  int                  `bson:"currentStreak"`
	LastActiveDate *time.Time           `bson:"lastActiveDate"`
	WeeklyPoints   int                  `bson:"weeklyPoints,omitempty"`
	Friends        []primitive.ObjectID `bson:"friends"`
	FriendRequests []friendRequestDoc   `bson:"friendRequests"`
	CreatedAt      time.Time            `bson:"createdAt"`
}

type friendRequestDoc struct {
	From       primitive.ObjectID `bson:"from"`
	FromName   string             `bson:"fromName"`
	FromEmail  string             `bson:"fromEmail"`
	FromAvatar *string            `bson:"fromAvatar"`
	Date       time.Time          `bson:"date"`
}

func userDocToModel(d userDoc) *models.User {
	reqs := make([]models.FriendRequest, 0, len(d.FriendRequests))
	for _, r := range d.FriendRequests {
		reqs = append(reqs, models.FriendRequest{
			From:       r.From.Hex(),
			FromName:   r.FromName,
			FromEmail:  r.FromEmail,
			FromAvatar: r.FromAvatar,
			Date:       r.Date,
		})
	}
	return &models.User{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.Password,
		Age:            d.Age,
		Height:         d.Height,
		Weight:         d.Weight,
		Gender:         d.Gender,
		ActivityLevel:  d.ActivityLevel,
		AvatarURL:      d.AvatarURL,
		Role:           d.Role,
		Points:         d.Points,
		CurrentStreak:  d.CurrentStreak,
		LastActiveDate: d.LastActiveDate,
		WeeklyPoints:   d.WeeklyPoints,
		Friends:        hexIDs(d.Friends),
		FriendRequests: reqs,
		CreatedAt:      d.CreatedAt,
	}
}

type UserStore struct {
	client       *mongo.Client
	col          *mongo.Collection
	transactions bool
	log          *zap.Logger
}

func NewUserStore(client *mongo.Client, col *mongo.Collection, transactions bool, log *zap.Logger) *UserStore {
	return &UserStore{client: client, col: col, transactions: transactions, log: log}
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	doc := userDoc{
		Name:           u.Name,
		Email:          u.Email,
		Password:       u.PasswordHash,
		Age:            u.Age,
		Height:         u.Height,
		Weight:         u.Weight,
		Gender:         u.Gender,
		ActivityLevel:  u.ActivityLevel,
		AvatarURL:      u.AvatarURL,
		Role:           u.Role,
		Points:         u.Points,
		CurrentStreak:  u.CurrentStreak,
		LastActiveDate: u.LastActiveDate,
		Friends:        []primitive.ObjectID{},
		FriendRequests: []friendRequestDoc{},
		CreatedAt:      u.CreatedAt,
	}
	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicateEmail
		}
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID).Hex()
	u.Friends = []string{}
	u.FriendRequests = []models.FriendRequest{}
	return nil
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return userDocToModel(doc), nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.User, 0)
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, *userDocToModel(doc))
	}
	return out, cur.Err()
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	return s.find(ctx, bson.M{})
}

func (s *UserStore) ListByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []models.User{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (s *UserStore) UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Age != nil {
		set["age"] = *p.Age
	}
	if p.Height != nil {
		set["height"] = *p.Height
	}
	if p.Weight != nil {
		set["weight"] = *p.Weight
	}
	if p.Gender != nil {
		set["gender"] = *p.Gender
	}
	if p.ActivityLevel != nil {
		set["activityLevel"] = *p.ActivityLevel
	}
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	var doc userDoc
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrDuplicateEmail
		}
		return nil, notFound(err)
	}
	return userDocToModel(doc), nil
}

func (s *UserStore) SetAvatar(ctx context.Context, id, url string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"avatarUrl": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *UserStore) IncrementPoints(ctx context.Context, id string, delta int) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc userDoc
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"points": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, notFound(err)
	}
	return userDocToModel(doc), nil
}

func (s *UserStore) SetStreak(ctx context.Context, id string, prevLastActive *time.Time, streak int, lastActive time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": oid}
	if prevLastActive == nil {
		filter["lastActiveDate"] = nil
	} else {
		filter["lastActiveDate"] = *prevLastActive
	}
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"currentStreak":  streak,
		"lastActiveDate": lastActive,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.missingOrConflict(ctx, oid)
	}
	return nil
}

func (s *UserStore) missingOrConflict(ctx context.Context, oid primitive.ObjectID) error {
	n, err := s.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return store.ErrConflict
}

func (s *UserStore) AddFriendRequest(ctx context.Context, receiverID string, req models.FriendRequest) error {
	rid, err := objectID(receiverID)
	if err != nil {
		return err
	}
	sid, err := objectID(req.From)
	if err != nil {
		return err
	}
	doc := friendRequestDoc{
		From:       sid,
		FromName:   req.FromName,
		FromEmail:  req.FromEmail,
		FromAvatar: req.FromAvatar,
		Date:       req.Date,
	}
	res, err := s.col.UpdateOne(ctx,
		bson.M{
			"_id":                 rid,
			"friends":             bson.M{"$ne": sid},
			"friendRequests.from": bson.M{"$ne": sid},
		},
		bson.M{"$push": bson.M{"friendRequests": doc}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.missingOrConflict(ctx, rid)
	}
	return nil
}

func (s *UserStore) RemoveFriendRequest(ctx context.Context, receiverID, senderID string) (bool, error) {
	rid, err := objectID(receiverID)
	if err != nil {
		return false, err
	}
	sid, err := objectID(senderID)
	if err != nil {
		return false, nil
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": rid},
		bson.M{"$pull": bson.M{"friendRequests": bson.M{"from": sid}}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, store.ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

func (s *UserStore) AcceptFriendRequest(ctx context.Context, receiverID, senderID string) error {
	rid, err := objectID(receiverID)
	if err != nil {
		return err
	}
	sid, err := objectID(senderID)
	if err != nil {
		return err
	}

	return s.withTransaction(ctx, func(ctx context.Context) error {
		res, err := s.col.UpdateOne(ctx,
			bson.M{"_id": rid, "friendRequests.from": sid},
			bson.M{
				"$addToSet": bson.M{"friends": sid},
				"$pull":     bson.M{"friendRequests": bson.M{"from": sid}},
			},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return store.ErrNotFound
		}

		// A crossing request from the receiver to the sender is settled too.
		res, err = s.col.UpdateOne(ctx,
			bson.M{"_id": sid},
			bson.M{
				"$addToSet": bson.M{"friends": rid},
				"$pull":     bson.M{"friendRequests": bson.M{"from": rid}},
			},
		)
		if err != nil {
			return s.halfWritten(rid, sid, err)
		}
		if res.MatchedCount == 0 {
			return s.halfWritten(rid, sid, store.ErrNotFound)
		}
		return nil
	})
}

func (s *UserStore) RemoveFriendship(ctx context.Context, userID, friendID string) error {
	uid, err := objectID(userID)
	if err != nil {
		return err
	}
	fid, err := objectID(friendID)
	if err != nil {
		return err
	}

	return s.withTransaction(ctx, func(ctx context.Context) error {
		res, err := s.col.UpdateOne(ctx,
			bson.M{"_id": uid, "friends": fid},
			bson.M{"$pull": bson.M{"friends": fid}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return store.ErrNotFound
		}
		if _, err := s.col.UpdateOne(ctx, bson.M{"_id": fid}, bson.M{"$pull": bson.M{"friends": uid}}); err != nil {
			return s.halfWritten(uid, fid, err)
		}
		return nil
	})
}

// halfWritten logs the one-directional state left behind when transactions
// are disabled and the second write of a pair fails. Inside a transaction the
// first write is rolled back and nothing needs reporting.
func (s *UserStore) halfWritten(first, second primitive.ObjectID, err error) error {
	if !s.transactions {
		s.log.Error("friendship_half_written",
			zap.String("written", first.Hex()),
			zap.String("failed", second.Hex()),
			zap.Error(err),
		)
	}
	return err
}

func (s *UserStore) withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrNotFound
	}
	return err
}
