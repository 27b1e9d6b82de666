package model

import "go.mongodb.org/mongo-driver/v2/bson"

// ContactInput holds the descriptive fields of a contact as they are submitted by a client on
// create and replace. All fields are required and must not be empty.
type ContactInput struct {
	FirstName     string `json:"firstName"     bson:"firstName"     db:"firstName"     validate:"required"`
	LastName      string `json:"lastName"      bson:"lastName"      db:"lastName"      validate:"required"`
	Email         string `json:"email"         bson:"email"         db:"email"         validate:"required"`
	FavoriteColor string `json:"favoriteColor" bson:"favoriteColor" db:"favoriteColor" validate:"required"`
	Birthday      string `json:"birthday"      bson:"birthday"      db:"birthday"      validate:"required"`
}

// Contact is the data structure for a person that we know. The Id is assigned by the store
// when the contact is created and never changes afterwards.
type Contact struct {
	Id           bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	ContactInput `bson:",inline"`
}
