package rest

import (
	"net/http"
	"time"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/labstack/echo/v4"
)

func (s *Server) setSessionCookie(c echo.Context, token string) {
	cookie := &http.Cookie{
		Name:     common.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	// zero validity means a session cookie
	if s.validity > 0 {
		cookie.MaxAge = int(s.validity.Seconds())
		cookie.Expires = time.Now().Add(s.validity)
	}
	c.SetCookie(cookie)
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     common.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
