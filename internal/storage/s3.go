package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/saddexed/clips/internal/classify"
	"github.com/saddexed/clips/internal/models"
)

// S3Store is the alternate remote backend for deployments that prefer a
// bucket over a chat channel. Objects are uploaded public-read style and the
// canonical bucket URL is recorded as the media URL.
type S3Store struct {
	uploader *manager.Uploader
	bucket   string
	region   string
	endpoint string
}

// NewS3Store loads the default AWS credential chain for region. endpoint
// overrides the public URL host for S3-compatible stores (MinIO).
func NewS3Store(ctx context.Context, region, bucket, endpoint string) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
		endpoint: endpoint,
	}, nil
}

// Upload puts the file under a random key prefix and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, filename string, mediaType models.MediaType, data []byte) (string, error) {
	key := uuid.NewString() + "/" + filename
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(classify.ContentType(mediaType)),
	})
	if err != nil {
		return "", &UploadError{Message: err.Error()}
	}

	escaped := url.PathEscape(key)
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, escaped), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped), nil
}
