package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shapeshed/shapeshed-backend/internal/config"
	"github.com/shapeshed/shapeshed-backend/internal/handler"
	"github.com/shapeshed/shapeshed-backend/internal/memstore"
	"github.com/shapeshed/shapeshed-backend/internal/service"
	"github.com/shapeshed/shapeshed-backend/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	router      *gin.Engine
	users       *memstore.Users
	classes     *memstore.Classes
	instructors *memstore.Instructors
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	validator.Setup()

	f := &fixture{
		users:       memstore.NewUsers(),
		classes:     memstore.NewClasses(),
		instructors: memstore.NewInstructors(),
	}
	log := zerolog.Nop()
	cache := memstore.NewCache()

	f.router = SetupRouter(&Handlers{
		Root:       handler.NewRootHandler(),
		User:       handler.NewUserHandler(service.NewUserService(f.users, log)),
		Class:      handler.NewClassHandler(service.NewClassService(f.classes, cache, log)),
		Instructor: handler.NewInstructorHandler(service.NewInstructorService(f.instructors, f.classes, cache, log)),
	}, &config.Config{GinMode: gin.TestMode})
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Origin", "https://shapeshed.example")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type updateBody struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

func TestRootAndCORS(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Running ShapeShed", w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateUserThenDuplicate(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/users", `{"email":"ada@example.com","name":"Ada"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ack := decode[map[string]any](t, w)
	assert.Equal(t, true, ack["acknowledged"])
	assert.NotEmpty(t, ack["insertedId"])

	w = f.do(t, http.MethodPost, "/users", `{"email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"user already exists"}`, w.Body.String())
	assert.Equal(t, 1, f.users.Count("ada@example.com"))

	w = f.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Ada", list[0]["name"])
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/users", `{"userRole":"student"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, w.Body.String(), `"email"`)

	w = f.do(t, http.MethodPost, "/users", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserClassLists(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users", `{"email":"u@example.com"}`)
	u, err := f.users.FindByEmail(t.Context(), "u@example.com")
	require.NoError(t, err)
	userID := u.ID.Hex()
	classID := primitive.NewObjectID().Hex()

	for range 2 {
		w := f.do(t, http.MethodPatch, "/users/"+classID+"/"+userID, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w := f.do(t, http.MethodPatch, "/users/"+classID+"/"+userID+"/enrolled", "")
	require.Equal(t, http.StatusOK, w.Code)

	u, _ = f.users.FindByEmail(t.Context(), "u@example.com")
	assert.Equal(t, []string{classID}, u.SelectedClasses())
	assert.Equal(t, []string{classID}, u.EnrolledClasses())

	w = f.do(t, http.MethodPatch, "/users/"+primitive.NewObjectID().Hex()+"/"+userID+"/remove", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decode[updateBody](t, w).ModifiedCount)

	w = f.do(t, http.MethodPatch, "/users/"+classID+"/"+userID+"/remove", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[updateBody](t, w)
	assert.True(t, body.Acknowledged)
	assert.Equal(t, int64(1), body.ModifiedCount)

	u, _ = f.users.FindByEmail(t.Context(), "u@example.com")
	assert.Empty(t, u.SelectedClasses())
}

func TestUserRoleRoute(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users", `{"email":"u@example.com"}`)
	u, _ := f.users.FindByEmail(t.Context(), "u@example.com")

	w := f.do(t, http.MethodPatch, "/users/instructor/"+u.ID.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)

	u, _ = f.users.FindByEmail(t.Context(), "u@example.com")
	assert.Equal(t, "instructor", u.Role())
	assert.Empty(t, u.SelectedClasses())
}

func TestUserListKeepsEmptyFields(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users", `{"email":"u@example.com","userRole":"","myEnrolledClasses":[]}`)
	u, err := f.users.FindByEmail(t.Context(), "u@example.com")
	require.NoError(t, err)
	classID := primitive.NewObjectID().Hex()

	require.Equal(t, http.StatusOK, f.do(t, http.MethodPatch, "/users/"+classID+"/"+u.ID.Hex(), "").Code)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPatch, "/users/"+classID+"/"+u.ID.Hex()+"/remove", "").Code)

	w := f.do(t, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, []any{}, list[0]["mySelectedClasses"])
	assert.Equal(t, []any{}, list[0]["myEnrolledClasses"])
	assert.Equal(t, "", list[0]["userRole"])
}

func TestUserFieldCaseFolded(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/users", `{"Email":"u@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	u, err := f.users.FindByEmail(t.Context(), "u@example.com")
	require.NoError(t, err)
	assert.NotContains(t, u.Extra, "Email")
}

func TestMalformedUserID(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPatch, "/users/admin/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}

func TestClassLifecycle(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/classes", `{"name":"Yoga","status":"pending","availableSeats":1,"price":20}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decode[map[string]any](t, w)["insertedId"].(string)

	w = f.do(t, http.MethodPatch, "/classes/approved/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	for range 3 {
		w = f.do(t, http.MethodPatch, "/classes/"+id, "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = f.do(t, http.MethodGet, "/classes", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "approved", list[0]["status"])
	assert.EqualValues(t, -2, list[0]["availableSeats"])
	assert.EqualValues(t, 20, list[0]["price"])
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestClassStoredAsPosted(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/classes", `{"name":"Spin","availableSeats":"20"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = f.do(t, http.MethodPost, "/classes", `{"name":"Row","availableSeats":10.5,"status":""}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, "/classes", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	byName := map[string]map[string]any{}
	for _, c := range decode[[]map[string]any](t, w) {
		byName[c["name"].(string)] = c
	}
	require.Len(t, byName, 2)
	assert.Equal(t, "20", byName["Spin"]["availableSeats"])
	assert.Equal(t, 10.5, byName["Row"]["availableSeats"])
	assert.Contains(t, byName["Row"], "status")
	assert.Equal(t, "", byName["Row"]["status"])
}

func TestClassBadID(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPatch, "/classes/xyz", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPatch, "/classes/open/xyz", "").Code)
}

func TestInstructorDetail(t *testing.T) {
	f := newFixture(t)
	f.classes.Add("Yoga", 8)
	id := f.instructors.Add("Yoga", "Archived")

	w := f.do(t, http.MethodGet, "/instructors/"+id.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		ID      string            `json:"_id"`
		Classes []json.RawMessage `json:"classes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, id.Hex(), body.ID)
	require.Len(t, body.Classes, 2)
	assert.Contains(t, string(body.Classes[0]), `"name":"Yoga"`)
	assert.Equal(t, "null", string(body.Classes[1]))

	w = f.do(t, http.MethodGet, "/instructors", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))
}

func TestInstructorMissing(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/instructors/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestStoreFailureIs500(t *testing.T) {
	f := newFixture(t)
	f.users.Err = assert.AnError

	w := f.do(t, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
