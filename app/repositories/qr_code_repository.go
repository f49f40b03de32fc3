package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/qrmenu/app/models"
)

// QRCodeCollection is the Mongo collection registry records live in.
const QRCodeCollection = "qrcodes"

// QRCodeRepository stores menuId → qrCodeUrl associations. Saving the
// same menu twice replaces the earlier record.
type QRCodeRepository interface {
	Save(ctx context.Context, qr models.QRCode) error
	FindByMenuID(ctx context.Context, menuID string) (models.QRCode, error)
}

type mongoQRCodeRepository struct {
	coll *mongo.Collection
}

func NewMongoQRCodeRepository(db *mongo.Database) QRCodeRepository {
	return &mongoQRCodeRepository{coll: db.Collection(QRCodeCollection)}
}

// EnsureQRCodeIndexes creates the unique menuId index.
func EnsureQRCodeIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(QRCodeCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "menuId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("qrcodes: create index: %w", err)
	}
	return nil
}

func (r *mongoQRCodeRepository) Save(ctx context.Context, qr models.QRCode) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"menuId": qr.MenuID},
		bson.M{"$set": qr},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("qrcodes: save %s: %w", qr.MenuID, err)
	}
	return nil
}

func (r *mongoQRCodeRepository) FindByMenuID(ctx context.Context, menuID string) (models.QRCode, error) {
	var qr models.QRCode
	err := r.coll.FindOne(ctx, bson.M{"menuId": menuID}).Decode(&qr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.QRCode{}, ErrRecordNotFound
	}
	if err != nil {
		return models.QRCode{}, fmt.Errorf("qrcodes: find %s: %w", menuID, err)
	}
	return qr, nil
}

type memoryQRCodeRepository struct {
	mu   sync.RWMutex
	data map[string]models.QRCode
}

// NewMemoryQRCodeRepository keeps records in process. Used in tests and
// when the registry runs without MongoDB.
func NewMemoryQRCodeRepository() QRCodeRepository {
	return &memoryQRCodeRepository{data: map[string]models.QRCode{}}
}

func (r *memoryQRCodeRepository) Save(_ context.Context, qr models.QRCode) error {
	r.mu.Lock()
	r.data[qr.MenuID] = qr
	r.mu.Unlock()
	return nil
}

func (r *memoryQRCodeRepository) FindByMenuID(_ context.Context, menuID string) (models.QRCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	qr, ok := r.data[menuID]
	if !ok {
		return models.QRCode{}, ErrRecordNotFound
	}
	return qr, nil
}
