package guard

import (
	"strings"

	"github.com/labstack/echo/v4"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
	"blogapi/internal/repo"
	"blogapi/internal/token"
)

const identityKey = "identity"

const bearerPrefix = "Bearer "

// Guard clears requests before any protected operation runs: it extracts the
// bearer token, validates it, resolves the subject against the user store and
// applies role checks. It only reads state, never writes it.
type Guard struct {
	Tokens *token.Service
	Users  *repo.UserRepo
}

// RequireAuth authenticates the request and stores the resolved account on
// the echo context. Resolving the account again on every request is what
// catches tokens whose subject was deleted after issuance.
func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			return reject(c, apperr.ErrMissingToken)
		}

		claims, err := g.Tokens.Validate(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return reject(c, err)
		}

		user, err := g.Users.ByEmail(claims.Email)
		if err != nil {
			return reject(c, err)
		}

		c.Set(identityKey, user)
		return next(c)
	}
}

// RequireRole gates an already-authenticated request on role-set membership.
func (g *Guard) RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := Identity(c)
			if user == nil {
				return reject(c, apperr.ErrMissingToken)
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return reject(c, apperr.ErrForbiddenRole)
		}
	}
}

// Identity returns the account resolved by RequireAuth, or nil on an
// unauthenticated route.
func Identity(c echo.Context) *models.User {
	if u, ok := c.Get(identityKey).(*models.User); ok {
		return u
	}
	return nil
}

// OwnedBy is the ownership gate: the acting account must be the resource
// owner. Role membership never substitutes for ownership here, so ADMIN gets
// no override on posts or comments.
func OwnedBy(ownerID uint, actor *models.User) error {
	if actor == nil || actor.ID != ownerID {
		return apperr.ErrNotOwner
	}
	return nil
}

func reject(c echo.Context, err error) error {
	e := apperr.Report(err)
	return c.JSON(e.Status, e)
}
