package rest

import (
	"net/http"

	"github.com/MrSidSir/sidEstate/internal/server/services"
	"github.com/labstack/echo/v4"
)

// getUser serves both the public profile and the authenticated lookup; the
// password hash is never serialized.
func (s *Server) getUser(c echo.Context) error {
	user, err := s.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c echo.Context) error {
	var in services.UserUpdate
	if err := c.Bind(&in); err != nil {
		return err
	}

	user, err := s.users.Update(c.Request().Context(), actorID(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) deleteUser(c echo.Context) error {
	if err := s.users.Delete(c.Request().Context(), actorID(c), c.Param("id")); err != nil {
		return err
	}

	s.clearSessionCookie(c)
	return c.JSON(http.StatusOK, "User has been deleted!")
}

func (s *Server) userListings(c echo.Context) error {
	found, err := s.listings.ListByOwner(c.Request().Context(), actorID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, found)
}

func (s *Server) presign(c echo.Context) error {
	upload, err := s.media.PresignUpload(c.Request().Context(), c.QueryParam("kind"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, upload)
}
