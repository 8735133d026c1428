package http

import (
	"github.com/labstack/echo/v4"

	"team-task-hub.com/team-task-hub/internal/constants"
	apperrors "team-task-hub.com/team-task-hub/internal/errors"
	"team-task-hub.com/team-task-hub/internal/services"
)

const actorContextKey = "teamtaskhub.actor"

// Actor is the resolved caller identity for one request. Authentication
// itself lives with the external identity provider; this core trusts the
// X-Actor-ID header it is handed.
type Actor struct {
	ID   string
	Role constants.Role
}

// ResolveActor turns the X-Actor-ID header into an Actor with its role
// loaded. Requests without a resolvable actor are rejected.
func ResolveActor(profiles *services.ProfileService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Actor-ID")
			if id == "" {
				return respondError(c, apperrors.ErrActorRequired)
			}

			role, err := profiles.RoleOf(c.Request().Context(), id)
			if err != nil {
				return respondError(c, err)
			}

			c.Set(actorContextKey, Actor{ID: id, Role: role})
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) Actor {
	actor, _ := c.Get(actorContextKey).(Actor)
	return actor
}
