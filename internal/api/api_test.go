package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/cakeshelf/cakeshelf/internal/services"
	"github.com/cakeshelf/cakeshelf/internal/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(db))

	svc := services.NewCakeService(sqlite.NewWithDB(db))
	log := zerolog.Nop()
	router := NewRouter(
		NewCakeHandler(svc, log),
		NewHealthHandler(func() bool { return true }),
		log,
		[]string{"*"},
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func cakePayload(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":      name,
		"comment":   "Moist and generously iced",
		"imageUrl":  "https://example.com/" + name + ".jpg",
		"yumFactor": 4,
	}
}

func createCake(t *testing.T, srv *httptest.Server, name string) map[string]interface{} {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/cakes", cakePayload(name))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]interface{}
	decode(t, resp, &created)
	return created
}

func TestCreateCake_ReturnsFullRecord(t *testing.T) {
	srv := newTestServer(t)

	created := createCake(t, srv, "Red Velvet")
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "Red Velvet", created["name"])
	assert.Equal(t, "Moist and generously iced", created["comment"])
	assert.Equal(t, float64(4), created["yumFactor"])
	assert.NotEmpty(t, created["createdAt"])
	assert.NotEmpty(t, created["updatedAt"])
}

func TestCreateCake_DuplicateNameConflict(t *testing.T) {
	srv := newTestServer(t)
	createCake(t, srv, "Red Velvet")

	resp := doJSON(t, http.MethodPost, srv.URL+"/cakes", cakePayload("red velvet"))
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "A cake with this name already exists", body["message"])
	assert.Equal(t, "name", body["field"])
}

func TestCreateCake_ValidationErrorsListedTogether(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/cakes", map[string]interface{}{
		"comment":   "abc",
		"imageUrl":  "not a url",
		"yumFactor": 3.5,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Errors, 4)
	assert.Equal(t, "name", body.Errors[0].Field)
	assert.Equal(t, "Name is required", body.Errors[0].Message)
	assert.Equal(t, "comment", body.Errors[1].Field)
	assert.Equal(t, "imageUrl", body.Errors[2].Field)
	assert.Equal(t, "yumFactor", body.Errors[3].Field)
	assert.Equal(t, "Yum factor must be an integer between 1 and 5", body.Errors[3].Message)
}

func TestCreateCake_MalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/cakes", bytes.NewBufferString("{nope"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "Invalid JSON", body["message"])
}

func TestListCakes_EmptyIsArrayNotNull(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/cakes")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	decode(t, resp, &list)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListCakes_ProjectionAndOrdering(t *testing.T) {
	srv := newTestServer(t)
	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		createCake(t, srv, name)
	}

	resp, err := http.Get(srv.URL + "/cakes")
	require.NoError(t, err)
	var list []map[string]interface{}
	decode(t, resp, &list)
	require.Len(t, list, 3)

	// Newest first.
	assert.Equal(t, "Gamma", list[0]["name"])
	assert.Equal(t, "Beta", list[1]["name"])
	assert.Equal(t, "Alpha", list[2]["name"])

	// Summary projection only: no comment, yumFactor or timestamps.
	for _, entry := range list {
		assert.Contains(t, entry, "id")
		assert.Contains(t, entry, "name")
		assert.Contains(t, entry, "imageUrl")
		assert.NotContains(t, entry, "comment")
		assert.NotContains(t, entry, "yumFactor")
		assert.NotContains(t, entry, "createdAt")
	}
}

func TestGetCake_InvalidIdRejectedBeforeLookup(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/cakes/not-a-valid-id")
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "id", body.Errors[0].Field)
	assert.Equal(t, "Invalid cake ID format", body.Errors[0].Message)
}

func TestGetCake_UnknownIdNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/cakes/1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "Cake not found", body["message"])
}

func TestUpdateCake_PartialUpdate(t *testing.T) {
	srv := newTestServer(t)
	created := createCake(t, srv, "Carrot")

	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/cakes/%s", srv.URL, created["id"]), map[string]interface{}{
		"yumFactor": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]interface{}
	decode(t, resp, &updated)
	assert.Equal(t, float64(5), updated["yumFactor"])
	assert.Equal(t, "Carrot", updated["name"])
	assert.Equal(t, created["comment"], updated["comment"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])
}

func TestUpdateCake_UnknownIdNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/cakes/1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed", map[string]interface{}{
		"yumFactor": 2,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "Cake not found", body["message"])
}

func TestUpdateCake_NameConflictWithOtherRecord(t *testing.T) {
	srv := newTestServer(t)
	createCake(t, srv, "Banoffee")
	other := createCake(t, srv, "Chiffon")

	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/cakes/%s", srv.URL, other["id"]), map[string]interface{}{
		"name": "BANOFFEE",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "A cake with this name already exists", body["message"])
	assert.Equal(t, "name", body["field"])
}

func TestDeleteCake_Flow(t *testing.T) {
	srv := newTestServer(t)
	created := createCake(t, srv, "Pavlova")
	url := fmt.Sprintf("%s/cakes/%s", srv.URL, created["id"])

	resp := doJSON(t, http.MethodDelete, url, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "Cake deleted successfully", body["message"])

	// Gone now.
	resp = doJSON(t, http.MethodDelete, url, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	getResp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	_ = getResp.Body.Close()
}

func TestUnmatchedRouteReturnsCatchAll(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "Route not found", body["message"])
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "UP", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestOpenAPIDocumentServed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/openapi.json")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]interface{}
	decode(t, resp, &doc)
	assert.Contains(t, doc, "openapi")
	assert.Contains(t, doc, "paths")
}
