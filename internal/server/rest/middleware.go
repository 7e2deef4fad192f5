package rest

import (
	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// guard admits requests carrying a valid session cookie and stores the
// caller's id on the context.
func (s *Server) guard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(common.AccessTokenCookieName)
		if err != nil || cookie.Value == "" {
			return common.NewError(common.ErrorUnauthorized, "Unauthorized")
		}

		userID, err := auth.GetUserIDFromToken(cookie.Value, s.jwtSecret)
		if err != nil {
			s.logger.Debug(c.Request().Context(), "rejected token", "error", err)
			return common.NewError(err, "Forbidden")
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

func actorID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
