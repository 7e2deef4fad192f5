package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSidSir/sidEstate/internal/common"
	sc "github.com/MrSidSir/sidEstate/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	MediaKindListing = "listing"
	MediaKindAvatar  = "avatar"

	presignExpiry = 15 * time.Minute
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// PresignedUpload tells the browser where to PUT a file and where it will be
// readable afterwards.
type PresignedUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
	URL       string `json:"url"`
}

type MediaService struct {
	config *sc.Config
	now    func() time.Time
}

func NewMediaService(cfg *sc.Config) *MediaService {
	return &MediaService{config: cfg, now: time.Now}
}

// StorageKey returns a fresh object key under the prefix of kind,
// e.g. listings/2024/5/1/<uuid>.
func StorageKey(kind string, d time.Time) string {
	return fmt.Sprintf("%ss/%d/%d/%d/%v", kind, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *MediaService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns a presigned PUT for a new object of the given kind.
func (s *MediaService) PresignUpload(ctx context.Context, kind string) (*PresignedUpload, error) {
	switch kind {
	case MediaKindListing, MediaKindAvatar:
	default:
		return nil, common.NewError(common.ErrorValidation, "kind must be one of [listing avatar]")
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := StorageKey(kind, s.now())

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{Key: key, UploadURL: req.URL, URL: s.config.PublicObjectURL(key)}, nil
}
