package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/store"
)

const sessionCollection = "sessions"

// SessionBackend keeps one document per profile, so token and user are
// replaced together by a single upsert.
type SessionBackend struct {
	coll    *mongo.Collection
	profile string
}

func NewSessionBackend(db *mongo.Database, profile string) *SessionBackend {
	return &SessionBackend{coll: db.Collection(sessionCollection), profile: profile}
}

type mongoSession struct {
	Profile   string `bson:"_id"`
	AuthToken string `bson:"auth_token"`
	User      string `bson:"user"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (b *SessionBackend) Name() string { return "mongo" }

func (b *SessionBackend) Load(ctx context.Context) (map[string]string, error) {
	var doc mongoSession
	if err := b.coll.FindOne(ctx, bson.M{"_id": b.profile}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return map[string]string{store.KeyToken: doc.AuthToken, store.KeyUser: doc.User}, nil
}

func (b *SessionBackend) Save(ctx context.Context, entries map[string]string) error {
	doc := mongoSession{
		Profile:   b.profile,
		AuthToken: entries[store.KeyToken],
		User:      entries[store.KeyUser],
		UpdatedAt: time.Now().UTC().Unix(),
	}
	_, err := b.coll.ReplaceOne(ctx, bson.M{"_id": b.profile}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (b *SessionBackend) Remove(ctx context.Context) error {
	if _, err := b.coll.DeleteOne(ctx, bson.M{"_id": b.profile}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (b *SessionBackend) Ping(ctx context.Context) error {
	return b.coll.Database().Client().Ping(ctx, nil)
}
