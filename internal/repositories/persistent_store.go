package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/anonto42/nano-midea/discovery/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

var (
	_ Store  = (*PersistentStore)(nil)
	_ Writer = (*PersistentStore)(nil)
)

// PersistentStore combines PostgreSQL (profiles, graph), MongoDB (content) and Redis (hashtags).
type PersistentStore struct {
	pg            *gorm.DB
	mongoDB       *mongo.Database
	hashtags      *RedisHashtagIndex
	snapshotReads bool
}

// NewPersistentStore wires the three backends. With snapshotReads the content
// reads of one View share a MongoDB snapshot session, which needs a replica set.
func NewPersistentStore(pg *gorm.DB, mongoDB *mongo.Database, hashtags *RedisHashtagIndex, snapshotReads bool) *PersistentStore {
	return &PersistentStore{pg: pg, mongoDB: mongoDB, hashtags: hashtags, snapshotReads: snapshotReads}
}

// Migrate creates the relational tables and the content indexes the store reads
func (s *PersistentStore) Migrate(ctx context.Context) error {
	err := s.pg.WithContext(ctx).AutoMigrate(
		&models.UserProfile{},
		&models.Follow{},
		&models.CloseFriend{},
		&models.Block{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := NewMongoContentRepository(s.mongoDB).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("content indexes: %w", err)
	}
	return nil
}

type persistentReader struct {
	*MongoContentRepository
	*PostgresUserRepository
	*PostgresGraphRepository
	*RedisHashtagIndex
}

// View opens a read-only repeatable-read transaction for profiles and graph and,
// when enabled, a snapshot session for content.
func (s *PersistentStore) View(ctx context.Context, fn func(ctx context.Context, r Reader) error) error {
	txOpts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	return s.pg.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := persistentReader{
			MongoContentRepository:  NewMongoContentRepository(s.mongoDB),
			PostgresUserRepository:  NewPostgresUserRepository(tx),
			PostgresGraphRepository: NewPostgresGraphRepository(tx),
			RedisHashtagIndex:       s.hashtags,
		}
		if !s.snapshotReads {
			return fn(ctx, r)
		}

		sess, err := s.mongoDB.Client().StartSession(options.Session().SetSnapshot(true))
		if err != nil {
			return fmt.Errorf("start mongo snapshot session: %w", err)
		}
		defer sess.EndSession(ctx)
		return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
			return fn(sc, r)
		})
	}, txOpts)
}

func (s *PersistentStore) PutUser(ctx context.Context, user *models.UserProfile) error {
	return NewPostgresUserRepository(s.pg).PutUser(ctx, user)
}

// PutContent upserts content; a newly inserted post bumps the owner's posts count
func (s *PersistentStore) PutContent(ctx context.Context, c *models.Content) error {
	inserted, err := NewMongoContentRepository(s.mongoDB).PutContent(ctx, c)
	if err != nil {
		return err
	}
	if inserted && c.Kind == models.KindPost {
		return NewPostgresUserRepository(s.pg).AdjustPostsCount(ctx, c.OwnerID, 1)
	}
	return nil
}

// DeleteContent hard-deletes content; deleting a post decrements the owner's posts count
func (s *PersistentStore) DeleteContent(ctx context.Context, id string) error {
	c, err := NewMongoContentRepository(s.mongoDB).DeleteContent(ctx, id)
	if err != nil {
		return err
	}
	if c.Kind == models.KindPost {
		return NewPostgresUserRepository(s.pg).AdjustPostsCount(ctx, c.OwnerID, -1)
	}
	return nil
}

func (s *PersistentStore) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return fmt.Errorf("cannot follow yourself")
	}
	return NewPostgresGraphRepository(s.pg).Follow(ctx, followerID, followingID)
}

func (s *PersistentStore) Unfollow(ctx context.Context, followerID, followingID string) error {
	return NewPostgresGraphRepository(s.pg).Unfollow(ctx, followerID, followingID)
}

func (s *PersistentStore) AddCloseFriend(ctx context.Context, ownerID, friendID string) error {
	return NewPostgresGraphRepository(s.pg).AddCloseFriend(ctx, ownerID, friendID)
}

func (s *PersistentStore) Block(ctx context.Context, blockerID, blockedID string) error {
	return NewPostgresGraphRepository(s.pg).Block(ctx, blockerID, blockedID)
}

func (s *PersistentStore) IndexHashtag(ctx context.Context, name string) error {
	return s.hashtags.IndexHashtag(ctx, name)
}
