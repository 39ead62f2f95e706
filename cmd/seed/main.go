package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type seedOptions struct {
	restaurantCount int
	dropCollections bool
	randomSeed      int64
	demoEmail       string
	demoPassword    string
}

type collections struct {
	restaurants string
	users       string
	cache       string
}

type geoPointDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"` // [lng, lat]
}

type restaurantDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	ExternalID  string             `bson:"externalId"`
	Name        string             `bson:"name"`
	Categories  []string           `bson:"categories,omitempty"`
	Address     string             `bson:"address,omitempty"`
	LogoURL     string             `bson:"logoURL,omitempty"`
	Phone       string             `bson:"phone,omitempty"`
	ReviewAvg   float64            `bson:"reviewAvg,omitempty"`
	ReviewCount int                `bson:"reviewCount,omitempty"`
	DeliveryFee string             `bson:"deliveryFee,omitempty"`
	Location    geoPointDocument   `bson:"location"`
	OpenHours   string             `bson:"openHours,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type userDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	Email          string             `bson:"email"`
	FullName       string             `bson:"fullName,omitempty"`
	HashedPassword string             `bson:"hashedPassword,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

// 사당역 인근을 기본 중심지로 사용한다.
const (
	centreLat = 37.484934
	centreLng = 126.981321
)

func main() {
	opts := parseFlags()

	cfg := collections{
		restaurants: envOrDefault("RESTAURANT_COLLECTION", "restaurants"),
		users:       envOrDefault("USER_COLLECTION", "users"),
		cache:       envOrDefault("CACHE_COLLECTION", "response_cache"),
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "gomgom")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB 연결에 실패했습니다: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.dropCollections {
		if err := dropCollections(ctx, db, cfg); err != nil {
			log.Fatalf("컬렉션 삭제에 실패했습니다: %v", err)
		}
		log.Printf("기존 컬렉션을 삭제했습니다")
	}

	if err := ensureIndexes(ctx, db, cfg); err != nil {
		log.Fatalf("인덱스 생성에 실패했습니다: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))

	restaurantDocs := generateRestaurants(rng, opts.restaurantCount)
	if len(restaurantDocs) == 0 {
		log.Fatal("생성된 가게 데이터가 없습니다")
	}
	if err := insertMany(ctx, db.Collection(cfg.restaurants), toAnySlice(restaurantDocs)); err != nil {
		log.Fatalf("가게 데이터 삽입에 실패했습니다: %v", err)
	}

	if opts.demoEmail != "" {
		if err := insertDemoUser(ctx, db.Collection(cfg.users), opts.demoEmail, opts.demoPassword); err != nil {
			log.Fatalf("데모 계정 생성에 실패했습니다: %v", err)
		}
		log.Printf("데모 계정 준비 완료: %s", opts.demoEmail)
	}

	log.Printf("Seed 완료: restaurants=%d", len(restaurantDocs))
	log.Printf("Mongo: %s / %s", mongoURI, dbName)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.IntVar(&opts.restaurantCount, "restaurants", 40, "생성할 가게 수")
	flag.BoolVar(&opts.dropCollections, "drop", true, "기존 컬렉션을 삭제하고 다시 넣는다")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "난수 시드 (재현용)")
	flag.StringVar(&opts.demoEmail, "demo-email", "demo@gomgom.local", "데모 계정 이메일 (빈 값이면 생성 안 함)")
	flag.StringVar(&opts.demoPassword, "demo-password", "gomgom1234", "데모 계정 비밀번호")
	flag.Parse()

	if opts.restaurantCount <= 0 {
		log.Fatal("restaurants 는 1 이상을 지정해 주세요")
	}
	return opts
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func dropCollections(ctx context.Context, db *mongo.Database, cfg collections) error {
	for _, name := range []string{cfg.restaurants, cfg.users, cfg.cache} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			// 존재하지 않는 컬렉션도 err 를 반환할 수 있어 warning 으로만 남긴다
			log.Printf("WARN: 컬렉션 %s 삭제 실패: %v", name, err)
		}
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, cfg collections) error {
	restaurantIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("idx_restaurant_location"),
		},
		{
			Keys:    bson.D{{Key: "externalId", Value: 1}},
			Options: options.Index().SetName("uniq_restaurant_external").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "reviewAvg", Value: -1}},
			Options: options.Index().SetName("idx_restaurant_reviewAvg"),
		},
	}
	if _, err := db.Collection(cfg.restaurants).Indexes().CreateMany(ctx, restaurantIndexes); err != nil {
		return err
	}

	if _, err := db.Collection(cfg.users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_user_email").SetUnique(true),
	}); err != nil {
		return err
	}

	if _, err := db.Collection(cfg.cache).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetName("idx_cache_ttl").SetExpireAfterSeconds(0),
	}); err != nil {
		return err
	}

	return nil
}

func generateRestaurants(rng *rand.Rand, count int) []restaurantDocument {
	now := time.Now().UTC()
	docs := make([]restaurantDocument, 0, count)

	for i := 0; i < count; i++ {
		name := restaurantNames[i%len(restaurantNames)]
		if i >= len(restaurantNames) {
			name = fmt.Sprintf("%s %d호점", name, i/len(restaurantNames)+1)
		}
		categories := pickUnique(rng, categoryOptions, 1+rng.Intn(2))

		// 중심지 반경 약 2km 안에 흩뿌린다.
		lat := centreLat + (rng.Float64()-0.5)*0.036
		lng := centreLng + (rng.Float64()-0.5)*0.045

		created := now.Add(-time.Duration(rng.Intn(365)) * 24 * time.Hour)
		docs = append(docs, restaurantDocument{
			ID:          primitive.NewObjectID(),
			ExternalID:  fmt.Sprintf("gg-%04d", i+1),
			Name:        name,
			Categories:  categories,
			Address:     fmt.Sprintf("서울 동작구 사당로 %d길 %d", 1+rng.Intn(30), 1+rng.Intn(50)),
			LogoURL:     fmt.Sprintf("https://cdn.gomgom.local/logos/gg-%04d.png", i+1),
			Phone:       fmt.Sprintf("02-%04d-%04d", 1000+rng.Intn(9000), 1000+rng.Intn(9000)),
			ReviewAvg:   3.5 + rng.Float64()*1.5,
			ReviewCount: 10 + rng.Intn(900),
			DeliveryFee: deliveryFeeOptions[rng.Intn(len(deliveryFeeOptions))],
			Location: geoPointDocument{
				Type:        "Point",
				Coordinates: []float64{lng, lat},
			},
			OpenHours: fmt.Sprintf("%02d:00-%02d:00", 9+rng.Intn(3), 21+rng.Intn(3)),
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	return docs
}

func insertDemoUser(ctx context.Context, col *mongo.Collection, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = col.InsertOne(ctx, userDocument{
		ID:             primitive.NewObjectID(),
		Email:          email,
		FullName:       "곰곰 데모",
		HashedPassword: string(hashed),
		CreatedAt:      time.Now().UTC(),
	})
	return err
}

func insertMany(ctx context.Context, col *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := col.InsertMany(ctx, docs)
	return err
}

func toAnySlice[T any](in []T) []interface{} {
	out := make([]interface{}, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}

func pickUnique(rng *rand.Rand, source []string, count int) []string {
	if count >= len(source) {
		cp := make([]string, len(source))
		copy(cp, source)
		return cp
	}
	seen := make(map[int]struct{}, count)
	result := make([]string, 0, count)
	for len(result) < count {
		idx := rng.Intn(len(source))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		result = append(result, source[idx])
	}
	return result
}

var (
	restaurantNames = []string{
		"곰곰식당", "사당불백", "매운갈비찜 장인", "엽기떡볶이 사당점", "평양면옥", "돈카츠 코우", "초밥 이야기",
		"마라공방", "할머니 순대국", "청년치킨", "봉추찜닭", "한우곰탕 진가", "연안식당", "샐러디움", "버거플래닛",
		"왕돈까스 본가", "숯불곱창 하루", "짬뽕지존", "카레당", "낙지한마당",
	}

	categoryOptions = []string{
		"한식", "중식", "일식", "양식", "분식", "치킨", "피자", "족발/보쌈", "찜/탕", "샐러드", "버거", "디저트",
	}

	deliveryFeeOptions = []string{"무료배달", "1,000원", "2,000원", "3,000원", "3,500원"}
)
