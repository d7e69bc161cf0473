package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// DefaultCollection is the MongoDB collection holding posts.
	DefaultCollection = "blogs"

	defaultConnectTimeout = 10 * time.Second
)

// mongoDocument is the stored shape of a Post. The ObjectID stays inside the
// store; callers only ever see its hex form in Post.ID.
type mongoDocument struct {
	ID     primitive.ObjectID `bson:"_id"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	URL    string             `bson:"url"`
	Likes  int                `bson:"likes"`
}

func (d mongoDocument) post() Post {
	return Post{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		URL:    d.URL,
		Likes:  d.Likes,
	}
}

// MongoOptions describes how to reach the posts collection.
type MongoOptions struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// MongoStore is a Store backed by a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongoStore connects to MongoDB and verifies the primary is reachable.
// The returned store owns the client; call Close to disconnect.
func OpenMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, errors.New("mongo store: URI is required")
	}
	if opts.Database == "" {
		return nil, errors.New("mongo store: database is required")
	}
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetAppName("bloglist").
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("could not connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("could not reach mongo: %w", err)
	}

	return NewMongoStore(client, opts.Database, opts.Collection), nil
}

// NewMongoStore uses an already connected client. An empty collection name
// selects DefaultCollection.
func NewMongoStore(client *mongo.Client, database, collection string) *MongoStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// Client exposes the underlying driver client for readiness probes.
func (s *MongoStore) Client() *mongo.Client {
	return s.client
}

func (s *MongoStore) List(ctx context.Context) ([]Post, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("could not list blogs: %w", err)
	}
	var docs []mongoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("could not decode blogs: %w", err)
	}
	posts := make([]Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.post())
	}
	return posts, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (Post, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return Post{}, err
	}
	var doc mongoDocument
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Post{}, fmt.Errorf("%.40q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Post{}, fmt.Errorf("could not get blog %.40q: %w", id, err)
	}
	return doc.post(), nil
}

func (s *MongoStore) Create(ctx context.Context, p Post) (Post, error) {
	doc := mongoDocument{
		ID:     primitive.NewObjectID(),
		Title:  p.Title,
		Author: p.Author,
		URL:    p.URL,
		Likes:  p.Likes,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return Post{}, fmt.Errorf("could not insert blog: %w", err)
	}
	return doc.post(), nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return fmt.Errorf("could not delete blog %.40q: %w", id, err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Clear drops every post.
func (s *MongoStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("could not clear blogs: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%.40q: %w", id, ErrInvalidID)
	}
	return oid, nil
}
