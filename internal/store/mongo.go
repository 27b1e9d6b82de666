package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gitlab.com/dirk.krummacker/contacts-api/internal/model"
)

// collectionName is the MongoDB collection that holds the contacts.
const collectionName = "contacts"

// DatabaseProvider hands out the database handle. It is satisfied by *database.Gateway.
type DatabaseProvider interface {
	Database() (*mongo.Database, error)
}

// MongoContacts implements ContactStore on a MongoDB collection.
type MongoContacts struct {
	gateway DatabaseProvider
}

var _ ContactStore = (*MongoContacts)(nil)

func NewMongoContacts(gateway DatabaseProvider) *MongoContacts {
	return &MongoContacts{gateway: gateway}
}

// collection looks up the contacts collection on every call, so a gateway that lost its
// connection shows up as an error of the individual operation.
func (s *MongoContacts) collection() (*mongo.Collection, error) {
	db, err := s.gateway.Database()
	if err != nil {
		return nil, err
	}
	return db.Collection(collectionName), nil
}

func (s *MongoContacts) List(ctx context.Context) ([]model.Contact, error) {
	coll, err := s.collection()
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "find contacts")
	}
	contacts := []model.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, errors.Wrap(err, "decode contacts")
	}
	return contacts, nil
}

func (s *MongoContacts) Get(ctx context.Context, id bson.ObjectID) (*model.Contact, error) {
	coll, err := s.collection()
	if err != nil {
		return nil, err
	}
	var contact model.Contact
	err = coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&contact)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find contact %s", id.Hex())
	}
	return &contact, nil
}

func (s *MongoContacts) Create(ctx context.Context, input *model.ContactInput) (bson.ObjectID, error) {
	coll, err := s.collection()
	if err != nil {
		return bson.NilObjectID, err
	}
	result, err := coll.InsertOne(ctx, input)
	if err != nil {
		return bson.NilObjectID, errors.Wrap(err, "insert contact")
	}
	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, errors.Errorf("unexpected id type %T", result.InsertedID)
	}
	return id, nil
}

func (s *MongoContacts) Replace(ctx context.Context, id bson.ObjectID, input *model.ContactInput) error {
	coll, err := s.collection()
	if err != nil {
		return err
	}
	result, err := coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, input)
	if err != nil {
		return errors.Wrapf(err, "replace contact %s", id.Hex())
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoContacts) Delete(ctx context.Context, id bson.ObjectID) error {
	coll, err := s.collection()
	if err != nil {
		return err
	}
	result, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return errors.Wrapf(err, "delete contact %s", id.Hex())
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
