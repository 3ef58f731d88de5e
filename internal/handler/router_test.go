package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xxxsen/edule/internal/handler"
	"github.com/xxxsen/edule/internal/middleware"
	"github.com/xxxsen/edule/internal/model"
	"github.com/xxxsen/edule/internal/pkg/jwt"
	"github.com/xxxsen/edule/internal/service"
	"github.com/xxxsen/edule/internal/testutil"
)

var jwtSecret = []byte("test-secret")

type fixture struct {
	router     http.Handler
	users      *testutil.UserStore
	tuitions   *testutil.DocumentStore
	applicants *testutil.DocumentStore
	connects   *testutil.DocumentStore
}

type setupOptions struct {
	gates        map[string]string
	updateFields []string
}

func setupRouter(t *testing.T, opts setupOptions) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		users:      testutil.NewUserStore(),
		tuitions:   testutil.NewDocumentStore(),
		applicants: testutil.NewDocumentStore(),
		connects:   testutil.NewDocumentStore(),
	}
	if opts.updateFields == nil {
		opts.updateFields = model.ProfileFields
	}
	userService := service.NewUserService(f.users, opts.updateFields)
	deps := handler.RouterDeps{
		Auth:       handler.NewAuthHandler(service.NewAuthService(f.users, jwtSecret, time.Hour)),
		Users:      handler.NewUserHandler(userService),
		Tuitions:   handler.NewTuitionHandler(service.NewTuitionService(f.tuitions)),
		Applicants: handler.NewApplicantHandler(service.NewApplicantService(f.applicants)),
		Connects:   handler.NewConnectHandler(service.NewConnectService(f.connects)),
		Roles:      userService,
		JWTSecret:  jwtSecret,
		Gates:      opts.gates,
	}
	engine, err := handler.NewEngine(deps, middleware.RequestID(), middleware.Recovery())
	require.NoError(t, err)
	f.router = engine
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func (f *fixture) signup(t *testing.T, email, role string) primitive.ObjectID {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/users", map[string]string{"email": email, "role": role, "name": "Old", "city": "Dhaka"}, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var res struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &res))
	require.True(t, res.Acknowledged)
	id, err := primitive.ObjectIDFromHex(res.InsertedID)
	require.NoError(t, err)
	return id
}

func (f *fixture) token(t *testing.T, email string) string {
	t.Helper()
	resp := f.do(t, http.MethodGet, "/jwt?email="+email, nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var res struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &res))
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	resp := f.do(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "Edule Server is running", resp.Body.String())
}

func TestRoleProbesMatchStoredRole(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	f.signup(t, "s@example.com", model.RoleStudent)
	f.signup(t, "t@example.com", model.RoleTutor)

	cases := []struct {
		path string
		key  string
		want bool
	}{
		{"/users/student/s@example.com", "isStudent", true},
		{"/users/tutor/s@example.com", "isTutor", false},
		{"/users/student/t@example.com", "isStudent", false},
		{"/users/tutor/t@example.com", "isTutor", true},
		{"/users/student/ghost@example.com", "isStudent", false},
	}
	for _, tc := range cases {
		resp := f.do(t, http.MethodGet, tc.path, nil, "")
		require.Equal(t, http.StatusOK, resp.Code, tc.path)
		require.Equal(t, map[string]bool{tc.key: tc.want}, decode[map[string]bool](t, resp), tc.path)
	}
}

func TestSignupValidation(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	for _, body := range []map[string]string{
		{"role": "student"},
		{"email": "not-an-email", "role": "student"},
		{"email": "a@example.com", "role": "admin"},
	} {
		resp := f.do(t, http.MethodPost, "/users", body, "")
		require.Equal(t, http.StatusBadRequest, resp.Code)
	}
}

func TestGatedRoutesWithoutTokenAreForbidden(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	for _, rt := range []struct{ method, path string }{
		{http.MethodPost, "/tuitions"},
		{http.MethodPost, "/applicants"},
		{http.MethodGet, "/tuitions"},
		{http.MethodGet, "/allApplications"},
		{http.MethodGet, "/myProfile"},
	} {
		resp := f.do(t, rt.method, rt.path, map[string]string{"x": "y"}, "")
		require.Equal(t, http.StatusForbidden, resp.Code, rt.path)
		require.JSONEq(t, `{"message":"Forbidden Access"}`, resp.Body.String(), rt.path)
	}
	require.Zero(t, f.tuitions.Len())
	require.Zero(t, f.applicants.Len())
}

func TestIssueTokenUnknownEmail(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	resp := f.do(t, http.MethodGet, "/jwt?email=ghost@example.com", nil, "")
	require.Equal(t, http.StatusForbidden, resp.Code)
	require.JSONEq(t, `{"accessToken":""}`, resp.Body.String())

	resp = f.do(t, http.MethodGet, "/jwt", nil, "")
	require.Equal(t, http.StatusForbidden, resp.Code)
	require.JSONEq(t, `{"accessToken":""}`, resp.Body.String())
}

func TestIssueTokenCarriesEmail(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	f.signup(t, "s@example.com", model.RoleStudent)
	claims, err := jwt.ParseToken(f.token(t, "s@example.com"), jwtSecret)
	require.NoError(t, err)
	require.Equal(t, "s@example.com", claims.Email)
}

func TestTuitionFlow(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	f.signup(t, "s@example.com", model.RoleStudent)
	f.signup(t, "t@example.com", model.RoleTutor)
	student := f.token(t, "s@example.com")
	tutor := f.token(t, "t@example.com")

	resp := f.do(t, http.MethodPost, "/tuitions", map[string]interface{}{"subject": "Math", "salary": 5000}, tutor)
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = f.do(t, http.MethodPost, "/tuitions", map[string]interface{}{"subject": "Math", "salary": 5000}, student)
	require.Equal(t, http.StatusOK, resp.Code)
	created := decode[map[string]interface{}](t, resp)
	require.Equal(t, true, created["acknowledged"])
	id, _ := created["insertedId"].(string)
	require.NotEmpty(t, id)

	resp = f.do(t, http.MethodGet, "/specificTuition/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	docs := decode[[]map[string]interface{}](t, resp)
	require.Len(t, docs, 1)
	require.Equal(t, id, docs[0]["_id"])
	require.Equal(t, "Math", docs[0]["subject"])
	require.EqualValues(t, 5000, docs[0]["salary"])

	resp = f.do(t, http.MethodGet, "/specificTuition/"+primitive.NewObjectID().Hex(), nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `[]`, resp.Body.String())

	resp = f.do(t, http.MethodGet, "/specificTuition/nope", nil, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.JSONEq(t, `{"message":"invalid id"}`, resp.Body.String())

	resp = f.do(t, http.MethodGet, "/tuitions", nil, tutor)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, decode[[]map[string]interface{}](t, resp), 1)
}

func TestDuplicateApplication(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	f.signup(t, "t@example.com", model.RoleTutor)
	f.signup(t, "s@example.com", model.RoleStudent)
	tutor := f.token(t, "t@example.com")

	application := map[string]string{"email": "t@example.com", "subjectId": "abc", "name": "Karim"}
	resp := f.do(t, http.MethodPost, "/applicants", application, f.token(t, "s@example.com"))
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = f.do(t, http.MethodPost, "/applicants", application, tutor)
	require.Equal(t, http.StatusOK, resp.Code)
	first := decode[map[string]interface{}](t, resp)
	require.Equal(t, true, first["acknowledged"])
	require.NotEmpty(t, first["insertedId"])

	resp = f.do(t, http.MethodPost, "/applicants", application, tutor)
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"acknowledged":false,"message":"You have already applied"}`, resp.Body.String())
	require.Equal(t, 1, f.applicants.Len())

	resp = f.do(t, http.MethodPost, "/applicants", map[string]string{"email": "t@example.com"}, tutor)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = f.do(t, http.MethodGet, "/allApplications", nil, tutor)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, decode[[]map[string]interface{}](t, resp), 1)
}

func TestConnectIsWriteOnly(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	resp := f.do(t, http.MethodPost, "/connects", map[string]string{"name": "Rahim", "message": "hi"}, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, 1, f.connects.Len())

	resp = f.do(t, http.MethodGet, "/connects", nil, "")
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = f.do(t, http.MethodPost, "/connects", []int{1}, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestProfileReadRoutes(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	id := f.signup(t, "s@example.com", model.RoleStudent)
	f.signup(t, "t@example.com", model.RoleTutor)
	token := f.token(t, "s@example.com")

	resp := f.do(t, http.MethodGet, "/users", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, decode[[]model.User](t, resp), 2)

	resp = f.do(t, http.MethodGet, "/myProfile?email=t@example.com", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	profiles := decode[[]model.User](t, resp)
	require.Len(t, profiles, 1)
	require.Equal(t, "t@example.com", profiles[0].Email)

	resp = f.do(t, http.MethodGet, "/myProfile", nil, token)
	require.Equal(t, http.StatusOK, resp.Code)
	profiles = decode[[]model.User](t, resp)
	require.Len(t, profiles, 1)
	require.Equal(t, "s@example.com", profiles[0].Email)

	resp = f.do(t, http.MethodGet, "/profileUpdate/"+id.Hex(), nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	user := decode[model.User](t, resp)
	require.Equal(t, id, user.ID)

	resp = f.do(t, http.MethodGet, "/profileUpdate/"+primitive.NewObjectID().Hex(), nil, "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "null", resp.Body.String())
}

func TestPartialProfileUpdate(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	id := f.signup(t, "s@example.com", model.RoleStudent)

	resp := f.do(t, http.MethodPatch, "/myProfileUpdate/s@example.com", map[string]string{"phone": "017"}, "")
	require.Equal(t, http.StatusOK, resp.Code)
	res := decode[model.UpdateResult](t, resp)
	require.True(t, res.Acknowledged)
	require.EqualValues(t, 1, res.MatchedCount)
	require.EqualValues(t, 1, res.ModifiedCount)

	resp = f.do(t, http.MethodPost, "/myProfileUpdate/"+id.Hex(), map[string]string{"study": "CSE"}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = f.do(t, http.MethodGet, "/profileUpdate/"+id.Hex(), nil, "")
	user := decode[model.User](t, resp)
	require.Equal(t, "017", user.Phone)
	require.Equal(t, "CSE", user.Study)
	require.Equal(t, "Old", user.Name)
	require.Equal(t, "Dhaka", user.City)
	require.Equal(t, model.RoleStudent, user.Role)

	resp = f.do(t, http.MethodPost, "/myProfileUpdate/s@example.com", map[string]string{"role": "tutor"}, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestConfiguredFieldListAndGates(t *testing.T) {
	f := setupRouter(t, setupOptions{
		updateFields: []string{model.FieldName},
		gates: map[string]string{
			"POST /myProfileUpdate/:key": "token",
			"GET /users":                 "student",
		},
	})
	f.signup(t, "s@example.com", model.RoleStudent)
	f.signup(t, "t@example.com", model.RoleTutor)

	body := map[string]string{"name": "New", "city": "Sylhet"}
	resp := f.do(t, http.MethodPost, "/myProfileUpdate/s@example.com", body, "")
	require.Equal(t, http.StatusForbidden, resp.Code)

	resp = f.do(t, http.MethodPost, "/myProfileUpdate/s@example.com", body, f.token(t, "s@example.com"))
	require.Equal(t, http.StatusOK, resp.Code)
	user, err := f.users.GetByEmail(t.Context(), "s@example.com")
	require.NoError(t, err)
	require.Equal(t, "New", user.Name)
	require.Equal(t, "Dhaka", user.City)

	resp = f.do(t, http.MethodGet, "/users", nil, f.token(t, "t@example.com"))
	require.Equal(t, http.StatusForbidden, resp.Code)
	resp = f.do(t, http.MethodGet, "/users", nil, f.token(t, "s@example.com"))
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestUnknownGateOverride(t *testing.T) {
	_, err := handler.ResolveGates(map[string]string{"GET /nope": "token"})
	require.Error(t, err)
	_, err = handler.ResolveGates(map[string]string{"GET /users": "admin"})
	require.Error(t, err)
	gates, err := handler.ResolveGates(nil)
	require.NoError(t, err)
	require.Equal(t, handler.DefaultGates, gates)
}

func TestDatastoreFailureIsInternalError(t *testing.T) {
	f := setupRouter(t, setupOptions{})
	f.tuitions.Err = errors.New("connection reset")
	f.users.Err = errors.New("connection reset")

	resp := f.do(t, http.MethodGet, "/users", nil, "")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	require.JSONEq(t, `{"message":"internal error"}`, resp.Body.String())

	resp = f.do(t, http.MethodGet, "/specificTuition/"+primitive.NewObjectID().Hex(), nil, "")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
}
