package guard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
	"blogapi/internal/repo"
	"blogapi/internal/token"
)

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

func newGuard(t *testing.T, ttl time.Duration) (*Guard, *gorm.DB) {
	db := initTestDB(t)
	return &Guard{
		Tokens: token.NewService([]byte("test-secret"), ttl),
		Users:  &repo.UserRepo{DB: db},
	}, db
}

// protectedRequest runs a request through RequireAuth plus any extra gates,
// in the same order the router chains them.
func protectedRequest(g *Guard, header string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	chain := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"email": Identity(c).Email})
	}
	for i := len(mw) - 1; i >= 0; i-- {
		chain = mw[i](chain)
	}
	chain = g.RequireAuth(chain)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = chain(c)
	return rec
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := models.User{Name: "test", Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apperr.Envelope {
	t.Helper()
	var e apperr.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestRequireAuthMissingHeader(t *testing.T) {
	g, _ := newGuard(t, time.Hour)

	rec := protectedRequest(g, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthWrongScheme(t *testing.T) {
	g, _ := newGuard(t, time.Hour)

	rec := protectedRequest(g, "Basic dXNlcjpwdw==")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthMalformedToken(t *testing.T) {
	g, _ := newGuard(t, time.Hour)

	rec := protectedRequest(g, "Bearer garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	g, db := newGuard(t, -time.Minute)
	seedUser(t, db, "alice@example.com", models.RoleUser)

	raw, err := g.Tokens.Issue("alice", "alice@example.com", models.RoleUser)
	require.NoError(t, err)

	rec := protectedRequest(g, "Bearer "+raw)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthDeletedAccount(t *testing.T) {
	g, _ := newGuard(t, time.Hour)

	// valid token but no matching account: the store lookup is the only
	// thing that can catch a stale identity
	raw, err := g.Tokens.Issue("ghost", "ghost@example.com", models.RoleUser)
	require.NoError(t, err)

	rec := protectedRequest(g, "Bearer "+raw)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequireAuthResolvesIdentity(t *testing.T) {
	g, db := newGuard(t, time.Hour)
	seedUser(t, db, "alice@example.com", models.RoleUser)

	raw, err := g.Tokens.Issue("alice", "alice@example.com", models.RoleUser)
	require.NoError(t, err)

	rec := protectedRequest(g, "Bearer "+raw)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestRequireRole(t *testing.T) {
	g, db := newGuard(t, time.Hour)
	seedUser(t, db, "user@example.com", models.RoleUser)
	seedUser(t, db, "admin@example.com", models.RoleAdmin)

	userToken, err := g.Tokens.Issue("user", "user@example.com", models.RoleUser)
	require.NoError(t, err)
	adminToken, err := g.Tokens.Issue("admin", "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)

	adminOnly := g.RequireRole(models.RoleAdmin)

	rec := protectedRequest(g, "Bearer "+userToken, adminOnly)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, http.StatusForbidden, decodeEnvelope(t, rec).Status)

	rec = protectedRequest(g, "Bearer "+adminToken, adminOnly)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOwnedBy(t *testing.T) {
	owner := &models.User{ID: 1, Role: models.RoleUser}
	other := &models.User{ID: 2, Role: models.RoleUser}
	admin := &models.User{ID: 3, Role: models.RoleAdmin}

	require.NoError(t, OwnedBy(1, owner))
	require.ErrorIs(t, OwnedBy(1, other), apperr.ErrNotOwner)
	// no admin override on ownership
	require.ErrorIs(t, OwnedBy(1, admin), apperr.ErrNotOwner)
	require.ErrorIs(t, OwnedBy(1, nil), apperr.ErrNotOwner)
}
