package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseEnv overlays values from environment variables. lookup is
// os.LookupEnv in production; .env files are loaded into the process
// environment by main before this runs.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if port, ok := lookup("PORT"); ok && port != "" {
		config.EndpointAddrHTTP = ":" + port
	}
	str("ADDRESS", &config.EndpointAddrHTTP)
	str("STORAGE_DRIVER", &config.StorageDriver)
	str("MONGO_URI", &config.MongoURI)
	str("MONGO_DATABASE", &config.MongoDatabase)
	str("DATABASE_DSN", &config.DatabaseDSN)
	str("JWT_SECRET", &config.SecretKey)
	str("LOG_LEVEL", &config.LogLevel)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("S3_PUBLIC_BASE_URL", &config.S3PublicBaseURL)

	if v, ok := lookup("TOKEN_VALIDITY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_VALIDITY: %w", err)
		}
		config.TokenValidityDuration = d
	}
	if v, ok := lookup("COOKIE_SECURE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		config.CookieSecure = b
	}
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		config.AllowedOrigins = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
