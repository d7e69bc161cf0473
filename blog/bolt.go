package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	"github.com/drblury/bloglist/ident"
	"github.com/drblury/bloglist/jsonutil"
)

var bucketName = []byte("blogs")

// BoltStore is a Store whose backend is a Bolt database file. Posts are kept
// as JSON documents in a single bucket keyed by their ULID, so cursor order
// is insertion order.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (creating if needed) the database file at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open bolt database %q: %w", path, err)
	}
	store, err := NewBoltStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewBoltStore wraps an open database, ensuring the blogs bucket exists.
func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketName); err != nil {
			return fmt.Errorf("could not ensure bucket %q exists: %w", bucketName, err)
		}
		return nil
	})
	return &BoltStore{db: db}, err
}

func (s *BoltStore) List(ctx context.Context) ([]Post, error) {
	posts := make([]Post, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			var p Post
			if err := jsonutil.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("could not decode %.40q: %w", k, err)
			}
			posts = append(posts, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *BoltStore) Get(ctx context.Context, id string) (p Post, err error) {
	if !ident.Valid(id) {
		return Post{}, fmt.Errorf("%.40q: %w", id, ErrInvalidID)
	}
	err = s.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketName).Get([]byte(id))
		if value == nil {
			return fmt.Errorf("%.40q: %w", id, ErrNotFound)
		}
		return jsonutil.Unmarshal(value, &p)
	})
	return p, err
}

func (s *BoltStore) Create(ctx context.Context, p Post) (Post, error) {
	p.ID = ident.New()
	value, err := jsonutil.Marshal(p)
	if err != nil {
		return Post{}, fmt.Errorf("could not encode post: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketName).Put([]byte(p.ID), value); err != nil {
			return fmt.Errorf("could not put %.40q: %w", p.ID, err)
		}
		return nil
	})
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

func (s *BoltStore) Delete(ctx context.Context, id string) error {
	if !ident.Valid(id) {
		return fmt.Errorf("%.40q: %w", id, ErrInvalidID)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(id))
	})
}

func (s *BoltStore) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketName) == nil {
			return errors.New("blogs bucket is missing")
		}
		return nil
	})
}

// Clear drops every post.
func (s *BoltStore) Clear(ctx context.Context) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketName); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketName)
		return err
	})
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
