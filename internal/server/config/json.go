package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/MrSidSir/sidEstate/internal/flagx"
)

// duration accepts both Go duration strings ("15m") and integer nanoseconds.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// JsonConfig mirrors Config for file-based configuration. Absent keys leave
// the corresponding Config field untouched.
type JsonConfig struct {
	EndpointAddrHTTP      string    `json:"endpoint_addr_http"`
	StorageDriver         string    `json:"storage_driver"`
	MongoURI              string    `json:"mongo_uri"`
	MongoDatabase         string    `json:"mongo_database"`
	DatabaseDSN           string    `json:"database_dsn"`
	SecretKey             string    `json:"secret_key"`
	TokenValidityDuration *duration `json:"token_validity_duration"`
	CookieSecure          *bool     `json:"cookie_secure"`
	AllowedOrigins        []string  `json:"allowed_origins"`
	LogLevel              string    `json:"log_level"`
	S3RootUser            string    `json:"s3_root_user"`
	S3RootPassword        string    `json:"s3_root_password"`
	S3Bucket              string    `json:"s3_bucket"`
	S3Region              string    `json:"s3_region"`
	S3BaseEndpoint        string    `json:"s3_base_endpoint"`
	S3PublicBaseURL       string    `json:"s3_public_base_url"`
}

// parseJson loads the file named by -c/-config in args, if any, and copies
// every key it sets into config.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StorageDriver, c.StorageDriver)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
