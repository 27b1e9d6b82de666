package service

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contacts-api/internal/apidocs"
	"gitlab.com/dirk.krummacker/contacts-api/internal/errs"
	"gitlab.com/dirk.krummacker/contacts-api/internal/model"
	"gitlab.com/dirk.krummacker/contacts-api/internal/store"
	"gitlab.com/dirk.krummacker/contacts-api/internal/validation"
)

const (
	messageInvalidID   = "Invalid id format"
	messageNotFound    = "Contact not found"
	messageInvalidJSON = "Invalid JSON body"
)

// Options control the parts of the router that differ between environments.
type Options struct {
	// Production hides error traces from clients.
	Production bool

	// RequestLogging logs every HTTP request.
	RequestLogging bool
}

// contactHandlers serves the contact endpoints from the injected store.
type contactHandlers struct {
	store store.ContactStore
	log   *zap.Logger
}

// SetupHttpRouter initializes the REST API router and registers all endpoints. The store can be
// a real database for production use or an in-memory store within unit tests.
func SetupHttpRouter(contacts store.ContactStore, log *zap.Logger, opts Options) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	router := gin.New()
	if opts.RequestLogging {
		router.Use(RequestLogger(log))
	}
	router.Use(Recovery(log, opts.Production))
	router.Use(cors.Default())
	router.Use(ErrorHandler(log, opts.Production))

	router.GET("/", greeting)
	apidocs.Register(router)

	h := &contactHandlers{store: contacts, log: log}
	router.GET("/contacts", h.findContacts)
	router.POST("/contacts", h.createContact)
	router.GET("/contacts/:id", h.findContactByID)
	router.PUT("/contacts/:id", h.replaceContactByID)
	router.DELETE("/contacts/:id", h.deleteContactByID)
	return router
}

// greeting answers the root path with a plain text greeting.
//
// Example REST API call:
//
//	> curl http://localhost:8080/
func greeting(c *gin.Context) {
	c.String(http.StatusOK, "Hello World")
}

// findContacts responds with the list of all contacts as JSON, in the natural order of the
// store. An empty store yields an empty list.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts
func (h *contactHandlers) findContacts(c *gin.Context) {
	contacts, err := h.store.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// findContactByID locates the contact whose id matches the id parameter of the request URL,
// then returns that contact as a response.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/65a1f0c2e4b0a1b2c3d4e5f6
func (h *contactHandlers) findContactByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": messageNotFound})
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// createContact inserts the contact specified in the request's JSON into the store. It responds
// with the full contact as stored, including the newly assigned id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Content-Type: application/json" --data '{"firstName": "Erika", "lastName": "Mustermann", "email": "erika@example.com", "favoriteColor": "green", "birthday": "1969-03-02"}'
func (h *contactHandlers) createContact(c *gin.Context) {
	input, ok := h.bindContact(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	id, err := h.store.Create(ctx, input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	created, err := h.readBack(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.IndentedJSON(http.StatusCreated, created)
}

// readBack fetches a contact that was just written. Not finding it is an internal error, not a
// 404 for the client.
func (h *contactHandlers) readBack(ctx context.Context, id bson.ObjectID) (*model.Contact, error) {
	contact, err := h.store.Get(ctx, id)
	if err != nil {
		return nil, errs.NewInternalServerError(errors.Wrapf(err, "read back contact %s", id.Hex()))
	}
	return contact, nil
}

// replaceContactByID overwrites all fields of the contact whose id matches the id parameter of
// the request URL. Fields are never merged: the body must contain the full contact. The
// response has no body.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/65a1f0c2e4b0a1b2c3d4e5f6 --request "PUT" --include --header "Content-Type: application/json" --data '{"firstName": "Rudi", "lastName": "Völler", "email": "rudi@example.com", "favoriteColor": "blue", "birthday": "1960-04-13"}'
func (h *contactHandlers) replaceContactByID(c *gin.Context) {
	input, ok := h.bindContact(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.store.Replace(c.Request.Context(), id, input)
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": messageNotFound})
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteContactByID deletes the contact whose id matches the id parameter of the request URL.
// The response has no body.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/65a1f0c2e4b0a1b2c3d4e5f6 --request "DELETE"
func (h *contactHandlers) deleteContactByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	err := h.store.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": messageNotFound})
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID reads the id parameter of the request URL. A malformed id is answered with 400 right
// away, before the store is consulted.
func parseID(c *gin.Context) (bson.ObjectID, bool) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": messageInvalidID})
		return bson.NilObjectID, false
	}
	return id, true
}

// bindContact decodes the request body and checks that all required fields are present. An
// empty body is treated like an empty JSON object, so it fails validation rather than parsing.
func (h *contactHandlers) bindContact(c *gin.Context) (*model.ContactInput, bool) {
	var input model.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(errs.NewBadRequestError(messageInvalidJSON))
		return nil, false
	}
	if result := validation.ValidateContact(&input); !result.OK {
		h.log.Debug("contact validation failed", zap.Strings("fields", result.Fields()))
		_ = c.Error(errs.NewValidationError(validation.RequiredFieldsMessage))
		return nil, false
	}
	return &input, true
}
