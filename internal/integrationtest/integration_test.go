package integrationtest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"gitlab.com/dirk.krummacker/contacts-api/internal/database"
	"gitlab.com/dirk.krummacker/contacts-api/internal/service"
	"gitlab.com/dirk.krummacker/contacts-api/internal/store"
)

// setupRouter connects to the MongoDB server named by the MONGODB_URI environment variable
// and returns a router on a fresh database. The test is skipped if no server is configured.
//
// Usage example on the command line:
// > MONGODB_URI=mongodb://localhost:27017 go test ./internal/integrationtest
func setupRouter(t *testing.T) *gin.Engine {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gateway := database.New()
	dbName := "contacts_it_" + bson.NewObjectID().Hex()
	require.NoError(t, gateway.Connect(ctx, uri, dbName))
	t.Cleanup(func() {
		if db, err := gateway.Database(); err == nil {
			_ = db.Drop(context.Background())
		}
		_ = gateway.Disconnect(context.Background())
	})

	gin.SetMode(gin.TestMode)
	return service.SetupHttpRouter(store.NewMongoContacts(gateway), nil, service.Options{})
}

// runRequest executes the HTTP request with the specified arguments and returns the response.
func runRequest(router *gin.Engine, method string, url string, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(method, url, strings.NewReader(body))
	router.ServeHTTP(recorder, request)
	return recorder
}

// TestContactHappyPath tests a POST, GET, PUT, and DELETE with valid data.
func TestContactHappyPath(t *testing.T) {
	router := setupRouter(t)

	// test the endpoint for creating a contact
	postRecorder := runRequest(router, "POST", "/contacts", `
		{
			"firstName": "Erika",
			"lastName": "Mustermann",
			"email": "erika@example.com",
			"favoriteColor": "green",
			"birthday": "1969-03-02"
		}
	`)
	require.Equal(t, http.StatusCreated, postRecorder.Code)
	var postBody map[string]interface{}
	json.Unmarshal(postRecorder.Body.Bytes(), &postBody)
	assert.Equal(t, "Erika", postBody["firstName"])
	assert.Equal(t, "Mustermann", postBody["lastName"])
	assert.Equal(t, "erika@example.com", postBody["email"])
	assert.Equal(t, "green", postBody["favoriteColor"])
	assert.Equal(t, "1969-03-02", postBody["birthday"])
	id, _ := postBody["_id"].(string)
	require.Len(t, id, 24)

	// test the endpoint for finding a contact
	getRecorder := runRequest(router, "GET", "/contacts/"+id, "")
	assert.Equal(t, http.StatusOK, getRecorder.Code)
	var getBody map[string]interface{}
	json.Unmarshal(getRecorder.Body.Bytes(), &getBody)
	assert.Equal(t, postBody, getBody)

	// test the endpoint for replacing a contact
	putRecorder := runRequest(router, "PUT", "/contacts/"+id, `
		{
			"firstName": "Rudi",
			"lastName": "Völler",
			"email": "rudi@example.com",
			"favoriteColor": "blue",
			"birthday": "1960-04-13"
		}
	`)
	assert.Equal(t, http.StatusNoContent, putRecorder.Code)

	// test if a subsequent lookup of the contact returns the replaced values
	getAgainRecorder := runRequest(router, "GET", "/contacts/"+id, "")
	assert.Equal(t, http.StatusOK, getAgainRecorder.Code)
	var getAgainBody map[string]interface{}
	json.Unmarshal(getAgainRecorder.Body.Bytes(), &getAgainBody)
	assert.Equal(t, id, getAgainBody["_id"])
	assert.Equal(t, "Rudi", getAgainBody["firstName"])
	assert.Equal(t, "Völler", getAgainBody["lastName"])
	assert.Equal(t, "rudi@example.com", getAgainBody["email"])
	assert.Equal(t, "blue", getAgainBody["favoriteColor"])
	assert.Equal(t, "1960-04-13", getAgainBody["birthday"])

	// test the endpoint for listing contacts
	listRecorder := runRequest(router, "GET", "/contacts", "")
	assert.Equal(t, http.StatusOK, listRecorder.Code)
	var listBody []map[string]interface{}
	json.Unmarshal(listRecorder.Body.Bytes(), &listBody)
	assert.Equal(t, []map[string]interface{}{getAgainBody}, listBody)

	// test the endpoint for deleting a contact, twice
	deleteRecorder := runRequest(router, "DELETE", "/contacts/"+id, "")
	assert.Equal(t, http.StatusNoContent, deleteRecorder.Code)
	deleteAgainRecorder := runRequest(router, "DELETE", "/contacts/"+id, "")
	assert.Equal(t, http.StatusNotFound, deleteAgainRecorder.Code)

	// test if a final lookup of the contact will correctly not find it
	getFinalRecorder := runRequest(router, "GET", "/contacts/"+id, "")
	assert.Equal(t, http.StatusNotFound, getFinalRecorder.Code)
}

// TestInvalidID expects malformed ids to be rejected before MongoDB is asked.
func TestInvalidID(t *testing.T) {
	router := setupRouter(t)
	for _, method := range []string{"GET", "DELETE"} {
		recorder := runRequest(router, method, "/contacts/not-an-id", "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.JSONEq(t, `{"message":"Invalid id format"}`, recorder.Body.String())
	}
}

// TestUnknownID expects a well-formed id without a document to be answered with NOT FOUND.
func TestUnknownID(t *testing.T) {
	router := setupRouter(t)
	id := bson.NewObjectID().Hex()
	assert.Equal(t, http.StatusNotFound, runRequest(router, "GET", "/contacts/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, runRequest(router, "DELETE", "/contacts/"+id, "").Code)
}

// TestCreateContactMissingFields expects an incomplete contact to be rejected and nothing to
// be stored.
func TestCreateContactMissingFields(t *testing.T) {
	router := setupRouter(t)
	recorder := runRequest(router, "POST", "/contacts", `{"firstName": "Erika"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	listRecorder := runRequest(router, "GET", "/contacts", "")
	assert.JSONEq(t, "[]", listRecorder.Body.String())
}
