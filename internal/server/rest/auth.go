package rest

import (
	"net/http"

	"github.com/MrSidSir/sidEstate/internal/server/services"
	"github.com/labstack/echo/v4"
)

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signup(c echo.Context) error {
	var in services.SignupInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	if _, err := s.users.Signup(c.Request().Context(), in); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, "User created successfully!")
}

func (s *Server) signin(c echo.Context) error {
	var in signinRequest
	if err := c.Bind(&in); err != nil {
		return err
	}

	user, token, err := s.users.Signin(c.Request().Context(), in.Email, in.Password)
	if err != nil {
		return err
	}

	s.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, user)
}

// google completes a sign-in whose identity was established by an external
// provider on the client side.
func (s *Server) google(c echo.Context) error {
	var in services.FederatedInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	user, token, err := s.users.Federated(c.Request().Context(), in)
	if err != nil {
		return err
	}

	s.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, user)
}

func (s *Server) signout(c echo.Context) error {
	s.clearSessionCookie(c)
	return c.JSON(http.StatusOK, "User has been logged out!")
}
