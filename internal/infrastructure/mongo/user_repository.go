package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository implements application.UserRepository using MongoDB.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a Mongo-backed account store.
func NewUserRepository(db *mongo.Database, collectionName string) *UserRepository {
	return &UserRepository{collection: db.Collection(collectionName)}
}

// FindByEmail returns the account for email, or (nil, nil) when none
// exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByKakaoID returns the account linked to a Kakao principal.
func (r *UserRepository) FindByKakaoID(ctx context.Context, kakaoID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"kakaoId": kakaoID})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc UserDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

// Create inserts a new account and fills in the generated ID.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := UserDocument{
		Email:          user.Email,
		FullName:       user.FullName,
		HashedPassword: user.HashedPassword,
		KakaoID:        user.KakaoID,
		CreatedAt:      time.Now(),
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(interface{ Hex() string }); ok {
		user.ID = id.Hex()
	}
	user.CreatedAt = doc.CreatedAt
	return nil
}
