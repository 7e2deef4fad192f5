package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSidSir/sidEstate/internal/common"
	"github.com/MrSidSir/sidEstate/internal/logging"
	"github.com/MrSidSir/sidEstate/internal/server/config"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/repomanager"
	"github.com/MrSidSir/sidEstate/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "rest-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		EndpointAddrHTTP:      "127.0.0.1:0",
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		AllowedOrigins:        []string{"http://localhost:5173"},
		S3Region:              "us-east-1",
		S3Bucket:              "sidestate",
		S3BaseEndpoint:        "http://127.0.0.1:9000",
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig()
	m := repomanager.NewMemoryRepositoryManager()
	return NewServer(cfg, logging.Nop{},
		services.NewUserService(m, cfg, logging.Nop{}),
		services.NewListingService(m, logging.Nop{}),
		services.NewMediaService(cfg))
}

func do(t *testing.T, s *Server, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.AccessTokenCookieName {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// register signs a user up and in, returning the session cookie and the id.
func register(t *testing.T, s *Server, username string) (*http.Cookie, string) {
	t.Helper()

	email := username + "@example.com"
	rec := do(t, s, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username, "email": email, "password": "secret-" + username,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/api/auth/signin", map[string]string{
		"email": email, "password": "secret-" + username,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	user := decode[map[string]any](t, rec)
	return &http.Cookie{Name: cookie.Name, Value: cookie.Value}, user["_id"].(string)
}

func listingBody(name string, offer bool) map[string]any {
	discount := 0
	if offer {
		discount = 100
	}
	return map[string]any{
		"name":          name,
		"description":   "A nice place",
		"address":       "1 Main St",
		"type":          "rent",
		"bedroom":       2,
		"bathroom":      1,
		"regularPrice":  500,
		"discountPrice": discount,
		"offer":         offer,
		"parking":       false,
		"furnished":     false,
		"imageUrls":     []string{"https://img.example.com/1.jpg"},
	}
}

func createListing(t *testing.T, s *Server, cookie *http.Cookie, name string, offer bool) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/listing/create", listingBody(name, offer), cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)["_id"].(string)
}

func listingIDs(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var ids []string
	for _, l := range decode[[]map[string]any](t, rec) {
		ids = append(ids, fmt.Sprint(l["_id"]))
	}
	return ids
}
