package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

const settingsCollection = "user_settings"

type MongoSettingsRepository struct {
	coll *mongo.Collection
}

var _ ports.SettingsRepository = (*MongoSettingsRepository)(nil)

func NewSettingsRepository(db *mongo.Database) *MongoSettingsRepository {
	return &MongoSettingsRepository{coll: db.Collection(settingsCollection)}
}

// EnsureIndexes creates the unique user_id index. Safe to call repeatedly.
func (r *MongoSettingsRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("settings indexes: %w", err)
	}
	return nil
}

type mongoSettings struct {
	UserID          string `bson:"user_id"`
	domain.Settings `bson:",inline"`
	UpdatedAt       int64 `bson:"updated_at"`
}

func (r *MongoSettingsRepository) Find(ctx context.Context, userID string) (*domain.Settings, error) {
	var doc mongoSettings
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("find settings: %w", err)
	}

	s := doc.Settings
	s.UpdatedAt = unixToTime(doc.UpdatedAt)
	return &s, nil
}

func (r *MongoSettingsRepository) Save(ctx context.Context, userID string, s domain.Settings) error {
	doc := mongoSettings{
		UserID:    userID,
		Settings:  s,
		UpdatedAt: s.UpdatedAt.Unix(),
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"user_id": userID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
