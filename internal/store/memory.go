package store

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"gitlab.com/dirk.krummacker/contacts-api/internal/model"
)

// MemoryContacts implements ContactStore in memory. Contacts are kept in insertion order.
type MemoryContacts struct {
	mu       sync.RWMutex
	contacts []model.Contact
}

var _ ContactStore = (*MemoryContacts)(nil)

func NewMemoryContacts(cs ...model.Contact) *MemoryContacts {
	return &MemoryContacts{contacts: slices.Clone(cs)}
}

// indexOf must be called with the lock held.
func (s *MemoryContacts) indexOf(id bson.ObjectID) int {
	return slices.IndexFunc(s.contacts, func(c model.Contact) bool { return c.Id == id })
}

func (s *MemoryContacts) List(_ context.Context) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Contact{}, s.contacts...), nil
}

func (s *MemoryContacts) Get(_ context.Context, id bson.ObjectID) (*model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	contact := s.contacts[i]
	return &contact, nil
}

func (s *MemoryContacts) Create(_ context.Context, input *model.ContactInput) (bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := bson.NewObjectID()
	s.contacts = append(s.contacts, model.Contact{Id: id, ContactInput: *input})
	return id, nil
}

func (s *MemoryContacts) Replace(_ context.Context, id bson.ObjectID, input *model.ContactInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.contacts[i].ContactInput = *input
	return nil
}

func (s *MemoryContacts) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.contacts = slices.Delete(s.contacts, i, i+1)
	return nil
}
