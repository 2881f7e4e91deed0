package middleware

import (
	"log"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"timetracker/internal/models"
	"timetracker/internal/services"
)

const (
	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/auth/login/"

	sessionUserKey = "user_id"
	localsUserKey  = "user"
)

// Auth ties the session store to user lookup.
type Auth struct {
	sessions *session.Store
	users    *services.AuthService
}

func NewAuth(sessions *session.Store, users *services.AuthService) *Auth {
	return &Auth{sessions: sessions, users: users}
}

// RequireLogin rejects requests without an authenticated session by
// redirecting to the login page, before any handler runs. The user is
// available to later handlers through CurrentUser.
func (a *Auth) RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.sessionUser(c)
		if err != nil {
			return err
		}
		if user == nil {
			return c.Redirect(LoginPath+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
		}
		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// Login starts a fresh authenticated session for user.
func (a *Auth) Login(c *fiber.Ctx, user *models.User) error {
	sess, err := a.sessions.Get(c)
	if err != nil {
		return errors.Wrap(err, "failed to load session")
	}
	if err := sess.Regenerate(); err != nil {
		return errors.Wrap(err, "failed to regenerate session")
	}
	sess.Set(sessionUserKey, user.ID.String())
	return errors.Wrap(sess.Save(), "failed to save session")
}

// Logout destroys the current session, if any.
func (a *Auth) Logout(c *fiber.Ctx) error {
	sess, err := a.sessions.Get(c)
	if err != nil {
		return errors.Wrap(err, "failed to load session")
	}
	return errors.Wrap(sess.Destroy(), "failed to destroy session")
}

// sessionUser returns the logged in user, or nil when the session carries none.
func (a *Auth) sessionUser(c *fiber.Ctx) (*models.User, error) {
	sess, err := a.sessions.Get(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	raw, ok := sess.Get(sessionUserKey).(string)
	if !ok {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		log.Printf("Discarding session with malformed user id: %q", raw)
		return nil, nil
	}
	user, err := a.users.GetUser(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CurrentUser returns the user set by RequireLogin.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

// SafeNext returns next when it is a local path, otherwise fallback.
func SafeNext(next, fallback string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	return next
}
