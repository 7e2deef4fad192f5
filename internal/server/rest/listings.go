package rest

import (
	"net/http"

	"github.com/MrSidSir/sidEstate/internal/server/models"
	"github.com/MrSidSir/sidEstate/internal/server/query"
	"github.com/labstack/echo/v4"
)

func (s *Server) createListing(c echo.Context) error {
	var in models.Listing
	if err := c.Bind(&in); err != nil {
		return err
	}

	created, err := s.listings.Create(c.Request().Context(), actorID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateListing(c echo.Context) error {
	var patch models.ListingPatch
	if err := c.Bind(&patch); err != nil {
		return err
	}

	updated, err := s.listings.Update(c.Request().Context(), actorID(c), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteListing(c echo.Context) error {
	if err := s.listings.Delete(c.Request().Context(), actorID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, "Listing has been deleted!")
}

func (s *Server) getListing(c echo.Context) error {
	l, err := s.listings.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, l)
}

func (s *Server) searchListings(c echo.Context) error {
	q, err := query.Parse(c.QueryParams())
	if err != nil {
		return err
	}

	found, err := s.listings.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, found)
}
