package model

// Contact is the data structure for a person that we know, as seen by clients of the REST API.
// The Id is empty until the service has stored the contact.
type Contact struct {
	Id            string `json:"_id,omitempty"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	FavoriteColor string `json:"favoriteColor"`
	Birthday      string `json:"birthday"`
}
