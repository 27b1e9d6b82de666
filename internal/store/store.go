// Package store persists contacts. The ContactStore interface hides which backend is in use;
// handlers only ever see identifiers, contacts and the errors declared here.
package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gitlab.com/dirk.krummacker/contacts-api/internal/model"
)

var (
	// ErrNotFound is returned when no contact matches the requested id.
	ErrNotFound = errors.New("store: contact not found")

	// ErrInvalidID is returned by ParseID for strings that are not a well-formed identifier.
	ErrInvalidID = errors.New("store: invalid id")
)

// ContactStore is implemented by every contact backend.
type ContactStore interface {
	// List returns all contacts in the natural order of the backend.
	List(ctx context.Context) ([]model.Contact, error)

	// Get returns the contact with the given id or ErrNotFound.
	Get(ctx context.Context, id bson.ObjectID) (*model.Contact, error)

	// Create stores a new contact and returns the id that was assigned to it.
	Create(ctx context.Context, input *model.ContactInput) (bson.ObjectID, error)

	// Replace overwrites all fields of the contact with the given id, or returns ErrNotFound.
	Replace(ctx context.Context, id bson.ObjectID, input *model.ContactInput) error

	// Delete removes the contact with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id bson.ObjectID) error
}

// ParseID converts the textual form of an identifier, 24 hex characters, into an ObjectID.
// Whether a contact with this id exists is not checked.
func ParseID(s string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, errors.Wrapf(ErrInvalidID, "%q", s)
	}
	return id, nil
}
