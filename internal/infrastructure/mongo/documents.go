package mongo

import (
	"time"

	"github.com/gomgom-ai/gomgom-services/app/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPointDocument 는 GeoJSON Point 를 그대로 담는 임베디드 문서.
type GeoPointDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"` // [lng, lat]
}

// RestaurantDocument 는 MongoDB 상의 가게 스키마를 Go 구조체로 표현한 것.
type RestaurantDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ExternalID     string             `bson:"externalId,omitempty"`
	Name           string             `bson:"name"`
	Categories     []string           `bson:"categories,omitempty"`
	Address        string             `bson:"address,omitempty"`
	LogoURL        string             `bson:"logoURL,omitempty"`
	Phone          string             `bson:"phone,omitempty"`
	ReviewAvg      float64            `bson:"reviewAvg,omitempty"`
	ReviewCount    int                `bson:"reviewCount,omitempty"`
	DeliveryFee    string             `bson:"deliveryFee,omitempty"`
	Location       GeoPointDocument   `bson:"location"`
	OpenHours      string             `bson:"openHours,omitempty"`
	CreatedAt      *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt      *time.Time         `bson:"updatedAt,omitempty"`
}

// UserDocument 는 가입 계정 스키마.
type UserDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	FullName       string             `bson:"fullName,omitempty"`
	HashedPassword string             `bson:"hashedPassword,omitempty"`
	KakaoID        string             `bson:"kakaoId,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

// CacheDocument holds one cached endpoint response. expiresAt drives
// a TTL index so Mongo reaps stale entries on its own.
type CacheDocument struct {
	Key       string    `bson:"_id"`
	Value     bson.Raw  `bson:"value"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

func mapRestaurantDocument(doc RestaurantDocument) domain.Restaurant {
	r := domain.Restaurant{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Categories:  doc.Categories,
		Address:     doc.Address,
		LogoURL:     doc.LogoURL,
		Phone:       doc.Phone,
		ReviewAvg:   doc.ReviewAvg,
		ReviewCount: doc.ReviewCount,
		DeliveryFee: domain.DeliveryFeeDisplay{Basic: doc.DeliveryFee},
		OpenHours:   doc.OpenHours,
	}
	if doc.ExternalID != "" {
		r.ID = doc.ExternalID
	}
	if len(doc.Location.Coordinates) == 2 {
		r.Location = domain.GeoPoint{
			Longitude: doc.Location.Coordinates[0],
			Latitude:  doc.Location.Coordinates[1],
		}
	}
	if doc.CreatedAt != nil {
		r.CreatedAt = *doc.CreatedAt
	}
	if doc.UpdatedAt != nil {
		r.UpdatedAt = *doc.UpdatedAt
	}
	return r
}

func mapUserDocument(doc UserDocument) domain.User {
	return domain.User{
		ID:             doc.ID.Hex(),
		Email:          doc.Email,
		FullName:       doc.FullName,
		HashedPassword: doc.HashedPassword,
		KakaoID:        doc.KakaoID,
		CreatedAt:      doc.CreatedAt,
	}
}
