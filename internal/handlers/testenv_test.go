package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapi/internal/apperr"
	"blogapi/internal/guard"
	"blogapi/internal/hash"
	"blogapi/internal/models"
	"blogapi/internal/repo"
	"blogapi/internal/service"
	"blogapi/internal/token"
	"blogapi/internal/upload"
)

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	DB        *gorm.DB
	Tokens    *token.Service
	Guard     *guard.Guard
	Auth      *AuthHandler
	Admin     *AdminHandler
	Profile   *ProfileHandler
	Post      *PostHandler
	Comment   *CommentHandler
	UploadDir string
}

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)
	tokens := token.NewService([]byte("test-secret"), time.Hour)

	users := &repo.UserRepo{DB: db}
	posts := &repo.PostRepo{DB: db}
	comments := &repo.CommentRepo{DB: db}
	uploadDir := t.TempDir()

	return &testEnv{
		T:       t,
		E:       echo.New(),
		DB:      db,
		Tokens:  tokens,
		Guard:   &guard.Guard{Tokens: tokens, Users: users},
		Auth:    &AuthHandler{Auth: &service.AuthService{Users: users, Tokens: tokens}},
		Admin:   &AdminHandler{Admin: &service.AdminService{Users: users}},
		Profile: &ProfileHandler{Users: &service.UserService{Users: users}},
		Post: &PostHandler{
			Posts:   service.NewPostService(posts, nil, "posts", nil),
			Uploads: &upload.Store{Dir: uploadDir},
		},
		Comment:   &CommentHandler{Comments: service.NewCommentService(comments, posts, nil)},
		UploadDir: uploadDir,
	}
}

func (env *testEnv) seedUser(email string, role models.Role) (*models.User, string) {
	env.T.Helper()

	pwHash, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	user := models.User{Name: "test", Email: email, PasswordHash: pwHash, Role: role}
	require.NoError(env.T, env.DB.Create(&user).Error)

	raw, err := env.Tokens.Issue(user.Name, user.Email, user.Role)
	require.NoError(env.T, err)
	return &user, raw
}

// do runs a handler without authentication.
func (env *testEnv) do(method, path string, body any, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	return env.request(method, path, body, "", handler, nil, nil)
}

// doAuth runs a handler behind the authorization guard with the given token.
func (env *testEnv) doAuth(method, path string, body any, bearer string, handler echo.HandlerFunc, paramNames, paramValues []string) *httptest.ResponseRecorder {
	return env.request(method, path, body, bearer, env.Guard.RequireAuth(handler), paramNames, paramValues)
}

func (env *testEnv) request(method, path string, body any, bearer string, handler echo.HandlerFunc, paramNames, paramValues []string) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	if paramNames != nil {
		c.SetParamNames(paramNames...)
		c.SetParamValues(paramValues...)
	}

	require.NoError(env.T, handler(c))
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apperr.Envelope {
	t.Helper()
	var e apperr.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func dataMap(t *testing.T, e apperr.Envelope) map[string]any {
	t.Helper()
	m, ok := e.Data.(map[string]any)
	require.True(t, ok, "envelope data is not an object: %#v", e.Data)
	return m
}
