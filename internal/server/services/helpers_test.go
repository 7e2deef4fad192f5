package services

import (
	"testing"
	"time"

	"github.com/MrSidSir/sidEstate/internal/logging"
	"github.com/MrSidSir/sidEstate/internal/server/config"
	"github.com/MrSidSir/sidEstate/internal/server/models"
	"github.com/MrSidSir/sidEstate/internal/server/repositories/repomanager"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		S3Region:              "us-east-1",
		S3RootUser:            "minioadmin",
		S3RootPassword:        "minioadmin",
		S3BaseEndpoint:        "http://127.0.0.1:9000",
		S3Bucket:              "sidestate",
	}
}

func newServices(t *testing.T) (*UserService, *ListingService) {
	t.Helper()
	m := repomanager.NewMemoryRepositoryManager()
	return NewUserService(m, testConfig(), logging.Nop{}), NewListingService(m, logging.Nop{})
}

func validListing() models.Listing {
	return models.Listing{
		Name:          "Cozy flat",
		Description:   "Two rooms near the park",
		Address:       "1 Main St",
		Type:          models.ListingTypeRent,
		Bedroom:       2,
		Bathroom:      1,
		RegularPrice:  500,
		DiscountPrice: 0,
		ImageURLs:     []string{"https://img/1.jpg"},
	}
}

func ptr[T any](v T) *T { return &v }
