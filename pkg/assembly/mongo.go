package assembly

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/schema"
)

// Defaults for the MongoDB backend.
const (
	DefaultDatabase   = "cabledraw"
	DefaultCollection = "assemblies"
)

// document is the stored form: {assembly_id, schema}.
type document struct {
	AssemblyID string          `bson:"assembly_id"`
	Schema     schema.Assembly `bson:"schema"`
}

// MongoStore reads assemblies from a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

// DialMongo connects to uri and returns a store over database/collection.
// Empty names use the defaults.
func DialMongo(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{client: client, coll: client.Database(database).Collection(collection)}, nil
}

// NewMongoStore wraps an existing collection.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

func (s *MongoStore) Get(ctx context.Context, id string) (*schema.Assembly, error) {
	var doc document
	err := s.coll.FindOne(ctx, bson.M{"assembly_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeAssemblyNotFound, "assembly %q not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load assembly %q", id)
	}
	if doc.Schema.AssemblyID == "" {
		doc.Schema.AssemblyID = doc.AssemblyID
	}
	return &doc.Schema, nil
}

func (s *MongoStore) Put(ctx context.Context, a *schema.Assembly) error {
	if a == nil || a.AssemblyID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "assembly id is required")
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"assembly_id": a.AssemblyID},
		document{AssemblyID: a.AssemblyID, Schema: *a},
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store assembly %q", a.AssemblyID)
	}
	return nil
}

// Close disconnects a store created by DialMongo.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
